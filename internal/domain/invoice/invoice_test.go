package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timbermagic/timbermagic-api/internal/httperr"
)

func TestGenerateNumber_Format(t *testing.T) {
	now := time.Date(2026, time.March, 9, 12, 0, 0, 0, time.UTC)

	n := GenerateNumber(now, func() int { return 42 })
	assert.Equal(t, "INV-202603-0042", n)
	assert.True(t, ValidNumber(n))

	for i := 0; i < 50; i++ {
		assert.True(t, ValidNumber(GenerateNumber(now, nil)))
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusDraft, StatusSent, true},
		{StatusDraft, StatusPaid, true},
		{StatusSent, StatusPaid, true},
		{StatusSent, StatusDraft, true},
		{StatusCancelled, StatusDraft, true},
		{StatusPaid, StatusPaid, true},
		{StatusPaid, StatusDraft, false},
		{StatusPaid, StatusSent, false},
		{StatusCancelled, StatusPaid, false},
		{StatusCancelled, StatusSent, false},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
		} else {
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition), "%s -> %s", tt.from, tt.to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("paid")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, st)

	_, err = ParseStatus("overdue")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestBuildItems_IgnoresClientTotal(t *testing.T) {
	items, err := BuildItems([]ItemInput{
		{Description: "Labor", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(100)},
		{Description: "Oak board", Quantity: decimal.RequireFromString("2.5"), UnitPrice: decimal.RequireFromString("40.10")},
	})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.True(t, items[0].Total.Equal(decimal.NewFromInt(300)))
	assert.True(t, items[1].Total.Equal(decimal.RequireFromString("100.25")))
	assert.Equal(t, 1, items[1].Position)
}

func TestBuildItems_TotalIsExactProductOfStoredValues(t *testing.T) {
	items, err := BuildItems([]ItemInput{
		{Description: "Hinges", Quantity: decimal.RequireFromString("1.5"), UnitPrice: decimal.RequireFromString("0.25")},
		{Description: "Stain", Quantity: decimal.RequireFromString("0.333"), UnitPrice: decimal.NewFromInt(3)},
	})
	require.NoError(t, err)

	assert.Equal(t, "0.375", items[0].Total.String())

	assert.Equal(t, "0.33", items[1].Quantity.String())
	assert.Equal(t, "0.99", items[1].Total.String())

	for _, it := range items {
		assert.True(t, it.Total.Equal(it.Quantity.Mul(it.UnitPrice)), it.Description)
	}
}

func TestBuildItems_RejectsNegative(t *testing.T) {
	_, err := BuildItems([]ItemInput{{Description: "x", Quantity: decimal.NewFromInt(-1), UnitPrice: decimal.NewFromInt(1)}})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidRequest))
}

func TestResolveTotals(t *testing.T) {
	items, _ := BuildItems([]ItemInput{
		{Description: "Labor", Quantity: decimal.NewFromInt(3), UnitPrice: decimal.NewFromInt(100)},
	})
	tax := decimal.NewFromInt(51)

	t.Run("derives subtotal and total", func(t *testing.T) {
		got := ResolveTotals(items, nil, &tax, nil)
		assert.True(t, got.Subtotal.Equal(decimal.NewFromInt(300)))
		assert.True(t, got.Total.Equal(decimal.NewFromInt(351)))
		assert.False(t, got.Mismatch)
	})

	t.Run("keeps a mismatching total and flags it", func(t *testing.T) {
		total := decimal.NewFromInt(400)
		got := ResolveTotals(items, nil, &tax, &total)
		assert.True(t, got.Total.Equal(total))
		assert.True(t, got.Mismatch)
	})
}
