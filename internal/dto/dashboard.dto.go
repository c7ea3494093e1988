package dto

import "github.com/shopspring/decimal"

type MonthlyRevenueDTO struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type StatusCountDTO struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type DashboardStatsDTO struct {
	TotalRequests     int64               `json:"totalRequests"`
	PendingRequests   int64               `json:"pendingRequests"`
	CompletedProjects int64               `json:"completedProjects"`
	TotalRevenue      decimal.Decimal     `json:"totalRevenue"`
	MonthlyRevenue    []MonthlyRevenueDTO `json:"monthlyRevenue"`
	RequestsByStatus  []StatusCountDTO    `json:"requestsByStatus"`
}
