package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/timbermagic/timbermagic-api/internal/domain/request"
	"github.com/timbermagic/timbermagic-api/internal/httpresp"
	"github.com/timbermagic/timbermagic-api/internal/middleware"
	ucRequest "github.com/timbermagic/timbermagic-api/internal/usecase/request"
)

// ======================================================
// HANDLER
// ======================================================

type RequestHandler struct {
	repo         domain.Repository
	createUC     *ucRequest.CreateRequest
	updateStatus *ucRequest.UpdateRequestStatus
}

func NewRequestHandler(
	repo domain.Repository,
	createUC *ucRequest.CreateRequest,
	updateStatus *ucRequest.UpdateRequestStatus,
) *RequestHandler {
	return &RequestHandler{
		repo:         repo,
		createUC:     createUC,
		updateStatus: updateStatus,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateQuoteRequest struct {
	Name        string     `json:"name" binding:"required"`
	Email       string     `json:"email" binding:"required,email"`
	Phone       string     `json:"phone"`
	ServiceID   *uuid.UUID `json:"service_id"`
	Description string     `json:"description" binding:"required"`
	Images      []string   `json:"images"`
}

type UpdateRequestStatusRequest struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Status string    `json:"status" binding:"required"`
}

// ======================================================
// CREATE (public)
// ======================================================

func (h *RequestHandler) Create(c *gin.Context) {
	var req CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), ucRequest.CreateRequestInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ServiceID:   req.ServiceID,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		respondError(c, err, "create request")
		return
	}

	httpresp.Created(c, res.Request)
}

// ======================================================
// LIST (admin)
// ======================================================

func (h *RequestHandler) List(c *gin.Context) {
	requests, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "list requests")
		return
	}

	httpresp.List(c, requests)
}

// ======================================================
// UPDATE STATUS (admin)
// ======================================================

func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	var req UpdateRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	updated, err := h.updateStatus.Execute(c.Request.Context(), req.ID, req.Status, middleware.Actor(c))
	if err != nil {
		respondError(c, err, "update request status")
		return
	}

	httpresp.OK(c, updated)
}
