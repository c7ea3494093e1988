package dashboard

import (
	"context"
	"time"

	domain "github.com/timbermagic/timbermagic-api/internal/domain/dashboard"
	"github.com/timbermagic/timbermagic-api/internal/domain/request"
	"github.com/timbermagic/timbermagic-api/internal/dto"
	"github.com/timbermagic/timbermagic-api/internal/timezone"
)

type GetDashboardStats struct {
	repo domain.Repository
	tz   string
	now  func() time.Time
}

func NewGetDashboardStats(repo domain.Repository, tz string) *GetDashboardStats {
	return &GetDashboardStats{repo: repo, tz: tz, now: time.Now}
}

func (uc *GetDashboardStats) Execute(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	now := uc.now().In(timezone.Location(uc.tz))

	counts, err := uc.repo.CountRequestsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := uc.repo.SumPaidRevenue(ctx)
	if err != nil {
		return nil, err
	}

	paid, err := uc.repo.ListPaidSince(ctx, domain.WindowStart(now))
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStatsDTO{
		TotalRequests:     domain.TotalRequests(counts),
		PendingRequests:   counts[string(request.StatusPending)],
		CompletedProjects: counts[string(request.StatusCompleted)],
		TotalRevenue:      revenue,
		MonthlyRevenue:    domain.MonthlyRevenue(now, paid),
		RequestsByStatus:  domain.StatusBreakdown(counts),
	}, nil
}
