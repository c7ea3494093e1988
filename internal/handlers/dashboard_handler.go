package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/timbermagic/timbermagic-api/internal/httpresp"
	ucDashboard "github.com/timbermagic/timbermagic-api/internal/usecase/dashboard"
)

type DashboardHandler struct {
	stats *ucDashboard.GetDashboardStats
}

func NewDashboardHandler(stats *ucDashboard.GetDashboardStats) *DashboardHandler {
	return &DashboardHandler{stats: stats}
}

func (h *DashboardHandler) Get(c *gin.Context) {
	out, err := h.stats.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err, "dashboard stats")
		return
	}

	httpresp.OK(c, out)
}
