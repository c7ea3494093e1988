package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/timbermagic/timbermagic-api/internal/httpresp"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// ======================================================
// GET /customers[?id=]
// ======================================================
func (h *CustomerHandler) Get(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	if c.Query("id") != "" {
		id, ok := queryID(c)
		if !ok {
			return
		}

		var customer models.Customer
		if err := db.First(&customer, "id = ?", id).Error; err != nil {
			respondError(c, notFoundOr(err, "customer_not_found"), "get customer")
			return
		}
		httpresp.OK(c, customer)
		return
	}

	var customers []models.Customer
	if err := db.Order("created_at DESC").Find(&customers).Error; err != nil {
		respondError(c, err, "list customers")
		return
	}

	httpresp.List(c, customers)
}
