package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/timbermagic/timbermagic-api/internal/domain/request"
	"github.com/timbermagic/timbermagic-api/internal/dto"
	"github.com/timbermagic/timbermagic-api/internal/timezone"
)

// Months is the length of the trailing revenue window, current month included.
const Months = 6

// WindowStart is the first instant of the oldest month in the window.
func WindowStart(now time.Time) time.Time {
	return timezone.MonthStart(now).AddDate(0, -(Months - 1), 0)
}

// MonthlyRevenue buckets paid invoices by the calendar month of their
// creation, in now's location. The result always has Months entries, oldest
// first, the month of now last. Invoices outside the window are ignored.
func MonthlyRevenue(now time.Time, paid []PaidInvoice) []dto.MonthlyRevenueDTO {
	start := WindowStart(now)
	loc := now.Location()

	out := make([]dto.MonthlyRevenueDTO, Months)
	for i := range out {
		m := start.AddDate(0, i, 0)
		out[i] = dto.MonthlyRevenueDTO{Month: m.Format("Jan 2006"), Revenue: decimal.Zero}
	}

	for _, inv := range paid {
		created := inv.CreatedAt.In(loc)
		idx := (created.Year()-start.Year())*12 + int(created.Month()) - int(start.Month())
		if idx < 0 || idx >= Months {
			continue
		}
		out[idx].Revenue = out[idx].Revenue.Add(inv.Total)
	}

	return out
}

// StatusBreakdown reports every request status in fixed order, zero when absent.
func StatusBreakdown(counts map[string]int64) []dto.StatusCountDTO {
	out := make([]dto.StatusCountDTO, 0, len(request.Statuses))
	for _, st := range request.Statuses {
		out = append(out, dto.StatusCountDTO{Status: string(st), Count: counts[string(st)]})
	}
	return out
}

// TotalRequests counts every row regardless of status, including values
// outside the known set.
func TotalRequests(counts map[string]int64) int64 {
	var total int64
	for _, n := range counts {
		total += n
	}
	return total
}
