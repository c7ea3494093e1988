package invoice

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	domain "github.com/timbermagic/timbermagic-api/internal/domain/invoice"
	"github.com/timbermagic/timbermagic-api/internal/infra/mailer"
	"github.com/timbermagic/timbermagic-api/internal/infra/payments"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

type fakeRepo struct {
	customers map[uuid.UUID]models.Customer
	invoices  map[uuid.UUID]*models.Invoice
	numbers   map[string]bool

	createCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		customers: map[uuid.UUID]models.Customer{},
		invoices:  map[uuid.UUID]*models.Invoice{},
		numbers:   map[string]bool{},
	}
}

func (r *fakeRepo) addCustomer(email string) models.Customer {
	c := models.Customer{ID: uuid.New(), Name: "Avi", Email: email}
	r.customers[c.ID] = c
	return c
}

func (r *fakeRepo) CustomerExists(_ context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.customers[id]
	return ok, nil
}

func (r *fakeRepo) CreateWithItems(_ context.Context, inv *models.Invoice) error {
	r.createCalls++
	if r.numbers[inv.InvoiceNumber] {
		return domain.ErrDuplicateNumber
	}
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.numbers[inv.InvoiceNumber] = true

	cp := *inv
	cp.Items = append([]models.InvoiceItem(nil), inv.Items...)
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	if c, ok := r.customers[inv.CustomerID]; ok {
		cp.Customer = &c
	}
	return &cp, nil
}

func (r *fakeRepo) List(context.Context) ([]models.Invoice, error) {
	return nil, errors.New("not used")
}

func (r *fakeRepo) ListOverdue(context.Context, time.Time) ([]models.Invoice, error) {
	return nil, errors.New("not used")
}

func (r *fakeRepo) Update(_ context.Context, id uuid.UUID, p domain.Patch, items []models.InvoiceItem) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.CustomerID != nil {
		inv.CustomerID = *p.CustomerID
	}
	if p.Subtotal != nil {
		inv.Subtotal = *p.Subtotal
	}
	if p.Tax != nil {
		inv.Tax = *p.Tax
	}
	if p.Total != nil {
		inv.Total = *p.Total
	}
	if p.Status != nil {
		inv.Status = string(*p.Status)
	}
	if p.DueDate != nil {
		inv.DueDate = *p.DueDate
	}
	if p.Notes != nil {
		inv.Notes = p.Notes
	}
	if items != nil {
		inv.Items = items
	}
	return nil
}

func (r *fakeRepo) SetStatus(_ context.Context, id uuid.UUID, st domain.Status) error {
	inv, ok := r.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = string(st)
	return nil
}

type fakeAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *fakeAudit) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakePayments struct {
	link string
	err  error
}

func (p fakePayments) PaymentLink(context.Context, payments.LinkRequest) (string, error) {
	return p.link, p.err
}
