package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/httpresp"
	"github.com/timbermagic/timbermagic-api/internal/middleware"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewServiceHandler(db *gorm.DB, rec audit.Recorder) *ServiceHandler {
	return &ServiceHandler{db: db, audit: rec}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	NameEN        string           `json:"name_en" binding:"required"`
	NameHE        string           `json:"name_he"`
	DescriptionEN string           `json:"description_en"`
	DescriptionHE string           `json:"description_he"`
	PriceFrom     *decimal.Decimal `json:"price_from" binding:"required"`
	PriceTo       *decimal.Decimal `json:"price_to"`
	ImageURL      string           `json:"image_url"`
	IsActive      *bool            `json:"is_active"`
}

type UpdateServiceRequest struct {
	ID            uuid.UUID        `json:"id" binding:"required"`
	NameEN        *string          `json:"name_en"`
	NameHE        *string          `json:"name_he"`
	DescriptionEN *string          `json:"description_en"`
	DescriptionHE *string          `json:"description_he"`
	PriceFrom     *decimal.Decimal `json:"price_from"`
	PriceTo       *decimal.Decimal `json:"price_to"`
	ImageURL      *string          `json:"image_url"`
	IsActive      *bool            `json:"is_active"`
}

func warnInvertedRange(s *models.Service) {
	if s.PriceRangeInverted() {
		logrus.WithFields(logrus.Fields{
			"service_id": s.ID,
			"price_from": s.PriceFrom.String(),
			"price_to":   s.PriceTo.String(),
		}).Warn("service price_to is below price_from")
	}
}

// --------- Handlers ---------

// Get serves GET /services. Public callers see active services only;
// ?all=true needs an admin token.
func (h *ServiceHandler) Get(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	if c.Query("id") != "" {
		id, ok := queryID(c)
		if !ok {
			return
		}

		var service models.Service
		if err := db.First(&service, "id = ?", id).Error; err != nil {
			respondError(c, notFoundOr(err, "service_not_found"), "get service")
			return
		}
		httpresp.OK(c, service)
		return
	}

	q := db.Order("created_at DESC")
	if c.Query("all") == "true" {
		if !middleware.IsAdmin(c) {
			httperr.Unauthorized(c, "invalid_token", "Admin authentication required")
			return
		}
	} else {
		q = q.Where("is_active = ?", true)
	}

	var services []models.Service
	if err := q.Find(&services).Error; err != nil {
		respondError(c, err, "list services")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	service := models.Service{
		NameEN:        req.NameEN,
		NameHE:        req.NameHE,
		DescriptionEN: req.DescriptionEN,
		DescriptionHE: req.DescriptionHE,
		PriceFrom:     *req.PriceFrom,
		PriceTo:       req.PriceTo,
		ImageURL:      req.ImageURL,
		IsActive:      true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	// Select("*") so an explicit is_active=false is not replaced by the
	// column default.
	if err := h.db.WithContext(c.Request.Context()).Select("*").Create(&service).Error; err != nil {
		respondError(c, err, "create service")
		return
	}
	warnInvertedRange(&service)

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   "service_created",
		Entity:   "service",
		EntityID: service.ID.String(),
	})

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updates := map[string]any{"updated_at": time.Now()}
	if req.NameEN != nil {
		updates["name_en"] = *req.NameEN
	}
	if req.NameHE != nil {
		updates["name_he"] = *req.NameHE
	}
	if req.DescriptionEN != nil {
		updates["description_en"] = *req.DescriptionEN
	}
	if req.DescriptionHE != nil {
		updates["description_he"] = *req.DescriptionHE
	}
	if req.PriceFrom != nil {
		updates["price_from"] = *req.PriceFrom
	}
	if req.PriceTo != nil {
		updates["price_to"] = *req.PriceTo
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	db := h.db.WithContext(c.Request.Context())

	res := db.Model(&models.Service{}).Where("id = ?", req.ID).Updates(updates)
	if res.Error != nil {
		respondError(c, res.Error, "update service")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "service_not_found", "Service not found")
		return
	}

	var service models.Service
	if err := db.First(&service, "id = ?", req.ID).Error; err != nil {
		respondError(c, notFoundOr(err, "service_not_found"), "reload service")
		return
	}
	warnInvertedRange(&service)

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   "service_updated",
		Entity:   "service",
		EntityID: service.ID.String(),
	})

	httpresp.OK(c, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&models.Service{}, "id = ?", id).Error; err != nil {
		respondError(c, err, "delete service")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: id.String(),
	})

	httpresp.NoContent(c)
}
