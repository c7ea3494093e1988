package invoice

import (
	"github.com/shopspring/decimal"

	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

// Quantity and unit price are stored with two decimals; the item total keeps
// the full product of the stored values.
const inputScale = 2

type ItemInput struct {
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal

	// Mismatch is set when a caller-supplied total differs from subtotal+tax.
	Mismatch bool
}

// BuildItems turns the input lines into rows with total = quantity × unit_price.
// Any total sent by the client is never read.
func BuildItems(in []ItemInput) ([]models.InvoiceItem, error) {
	items := make([]models.InvoiceItem, 0, len(in))
	for i, it := range in {
		if it.Description == "" {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidRequest, "item description is required")
		}
		if it.Quantity.IsNegative() || it.UnitPrice.IsNegative() {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidRequest, "item quantity and unit price must not be negative")
		}
		qty := it.Quantity.Round(inputScale)
		price := it.UnitPrice.Round(inputScale)
		items = append(items, models.InvoiceItem{
			Description: it.Description,
			Quantity:    qty,
			UnitPrice:   price,
			Total:       qty.Mul(price),
			Position:    i,
		})
	}
	return items, nil
}

func SumItems(items []models.InvoiceItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Total)
	}
	return sum
}

// ResolveTotals fills in what the caller left out: subtotal defaults to the
// item sum, tax to zero, total to subtotal+tax. A supplied total is kept.
func ResolveTotals(items []models.InvoiceItem, subtotal, tax, total *decimal.Decimal) Totals {
	t := Totals{Subtotal: SumItems(items), Tax: decimal.Zero}
	if subtotal != nil {
		t.Subtotal = *subtotal
	}
	if tax != nil {
		t.Tax = *tax
	}

	expected := t.Subtotal.Add(t.Tax)
	t.Total = expected
	if total != nil {
		t.Total = *total
		t.Mismatch = !total.Equal(expected)
	}
	return t
}
