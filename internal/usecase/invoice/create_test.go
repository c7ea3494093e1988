package invoice

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/timbermagic/timbermagic-api/internal/domain/invoice"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

func newCreate(repo *fakeRepo, rec *fakeAudit, suffixes ...int) *CreateInvoice {
	uc := NewCreateInvoice(repo, rec, "UTC")
	uc.now = func() time.Time { return time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC) }
	if len(suffixes) > 0 {
		i := 0
		uc.suffix = func() int {
			s := suffixes[i%len(suffixes)]
			i++
			return s
		}
	}
	return uc
}

func laborInput(customerID uuid.UUID) CreateInvoiceInput {
	return CreateInvoiceInput{
		CustomerID: customerID,
		Items: []domain.ItemInput{
			{Description: "Labor", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(100)},
		},
		DueDate: models.NewDate(2026, time.April, 1),
		Actor:   "tamam",
	}
}

func TestCreateInvoice_ItemTotalIsServerSide(t *testing.T) {
	repo := newFakeRepo()
	rec := &fakeAudit{}
	c := repo.addCustomer("avi@example.com")

	inv, err := newCreate(repo, rec, 42).Execute(context.Background(), laborInput(c.ID))
	require.NoError(t, err)

	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Total.Equal(decimal.NewFromInt(300)))
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(300)))
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "INV-202603-0042", inv.InvoiceNumber)
	assert.Equal(t, "draft", inv.Status)
	require.NotNil(t, inv.Customer)
	assert.Equal(t, "avi@example.com", inv.Customer.Email)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "invoice_created", rec.events[0].Action)
}

func TestCreateInvoice_RetriesDuplicateNumber(t *testing.T) {
	repo := newFakeRepo()
	c := repo.addCustomer("avi@example.com")
	repo.numbers["INV-202603-0042"] = true

	inv, err := newCreate(repo, &fakeAudit{}, 42, 42, 7).Execute(context.Background(), laborInput(c.ID))
	require.NoError(t, err)

	assert.Equal(t, "INV-202603-0007", inv.InvoiceNumber)
	assert.Equal(t, 3, repo.createCalls)
}

func TestCreateInvoice_GivesUpAfterMaxAttempts(t *testing.T) {
	repo := newFakeRepo()
	c := repo.addCustomer("avi@example.com")
	repo.numbers["INV-202603-0042"] = true

	_, err := newCreate(repo, &fakeAudit{}, 42).Execute(context.Background(), laborInput(c.ID))
	require.Error(t, err)
	assert.Equal(t, domain.MaxNumberAttempts, repo.createCalls)
}

func TestCreateInvoice_UnknownCustomer(t *testing.T) {
	repo := newFakeRepo()

	_, err := newCreate(repo, &fakeAudit{}).Execute(context.Background(), laborInput(uuid.New()))
	assert.True(t, httperr.IsBusiness(err, "unknown_customer"))
	assert.Zero(t, repo.createCalls)
}

func TestCreateInvoice_InvalidStatus(t *testing.T) {
	repo := newFakeRepo()
	c := repo.addCustomer("avi@example.com")

	in := laborInput(c.ID)
	in.Status = "overdue"

	_, err := newCreate(repo, &fakeAudit{}).Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestCreateInvoice_KeepsMismatchingTotal(t *testing.T) {
	repo := newFakeRepo()
	c := repo.addCustomer("avi@example.com")

	in := laborInput(c.ID)
	tax := decimal.NewFromInt(51)
	total := decimal.NewFromInt(400)
	in.Tax = &tax
	in.Total = &total

	inv, err := newCreate(repo, &fakeAudit{}).Execute(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, inv.Total.Equal(total))
	assert.True(t, inv.Tax.Equal(tax))
}
