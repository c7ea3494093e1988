package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domain "github.com/timbermagic/timbermagic-api/internal/domain/invoice"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/httpresp"
	"github.com/timbermagic/timbermagic-api/internal/middleware"
	"github.com/timbermagic/timbermagic-api/internal/models"
	ucInvoice "github.com/timbermagic/timbermagic-api/internal/usecase/invoice"
)

// ======================================================
// HANDLER
// ======================================================

type InvoiceHandler struct {
	repo     domain.Repository
	createUC *ucInvoice.CreateInvoice
	updateUC *ucInvoice.UpdateInvoice
	sendUC   *ucInvoice.SendInvoice
}

func NewInvoiceHandler(
	repo domain.Repository,
	createUC *ucInvoice.CreateInvoice,
	updateUC *ucInvoice.UpdateInvoice,
	sendUC *ucInvoice.SendInvoice,
) *InvoiceHandler {
	return &InvoiceHandler{
		repo:     repo,
		createUC: createUC,
		updateUC: updateUC,
		sendUC:   sendUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// InvoiceItemRequest ignores any client "total"; it is recomputed.
type InvoiceItemRequest struct {
	Description string           `json:"description" binding:"required"`
	Quantity    *decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice   *decimal.Decimal `json:"unit_price" binding:"required"`
}

type CreateInvoiceRequest struct {
	CustomerID uuid.UUID            `json:"customer_id" binding:"required"`
	Items      []InvoiceItemRequest `json:"items" binding:"dive"`
	Subtotal   *decimal.Decimal     `json:"subtotal"`
	Tax        *decimal.Decimal     `json:"tax"`
	Total      *decimal.Decimal     `json:"total"`
	Status     string               `json:"status"`
	DueDate    *models.Date         `json:"due_date" binding:"required"`
	Notes      *string              `json:"notes"`
}

type UpdateInvoiceRequest struct {
	ID         uuid.UUID             `json:"id" binding:"required"`
	CustomerID *uuid.UUID            `json:"customer_id"`
	Items      *[]InvoiceItemRequest `json:"items" binding:"omitempty,dive"`
	Subtotal   *decimal.Decimal      `json:"subtotal"`
	Tax        *decimal.Decimal      `json:"tax"`
	Total      *decimal.Decimal      `json:"total"`
	Status     *string               `json:"status"`
	DueDate    *models.Date          `json:"due_date"`
	Notes      *string               `json:"notes"`
}

type SendInvoiceRequest struct {
	ID uuid.UUID `json:"id" binding:"required"`
}

func toItemInputs(in []InvoiceItemRequest) []domain.ItemInput {
	out := make([]domain.ItemInput, 0, len(in))
	for _, it := range in {
		out = append(out, domain.ItemInput{
			Description: it.Description,
			Quantity:    *it.Quantity,
			UnitPrice:   *it.UnitPrice,
		})
	}
	return out
}

// ======================================================
// GET /invoices[?id=]
// ======================================================

func (h *InvoiceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("id") != "" {
		id, ok := queryID(c)
		if !ok {
			return
		}

		inv, err := h.repo.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				err = httperr.ErrBusiness("invoice_not_found")
			}
			respondError(c, err, "get invoice")
			return
		}
		httpresp.OK(c, inv)
		return
	}

	invoices, err := h.repo.List(ctx)
	if err != nil {
		respondError(c, err, "list invoices")
		return
	}

	httpresp.List(c, invoices)
}

// ======================================================
// CREATE
// ======================================================

func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	inv, err := h.createUC.Execute(c.Request.Context(), ucInvoice.CreateInvoiceInput{
		CustomerID: req.CustomerID,
		Items:      toItemInputs(req.Items),
		Subtotal:   req.Subtotal,
		Tax:        req.Tax,
		Total:      req.Total,
		Status:     req.Status,
		DueDate:    *req.DueDate,
		Notes:      req.Notes,
		Actor:      middleware.Actor(c),
	})
	if err != nil {
		respondError(c, err, "create invoice")
		return
	}

	httpresp.Created(c, inv)
}

// ======================================================
// UPDATE
// ======================================================

func (h *InvoiceHandler) Update(c *gin.Context) {
	var req UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	in := ucInvoice.UpdateInvoiceInput{
		ID:         req.ID,
		CustomerID: req.CustomerID,
		Subtotal:   req.Subtotal,
		Tax:        req.Tax,
		Total:      req.Total,
		Status:     req.Status,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
		Actor:      middleware.Actor(c),
	}
	if req.Items != nil {
		items := toItemInputs(*req.Items)
		in.Items = &items
	}

	inv, err := h.updateUC.Execute(c.Request.Context(), in)
	if err != nil {
		respondError(c, err, "update invoice")
		return
	}

	httpresp.OK(c, inv)
}

// ======================================================
// SEND
// ======================================================

func (h *InvoiceHandler) Send(c *gin.Context) {
	var req SendInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if _, err := h.sendUC.Execute(c.Request.Context(), req.ID, middleware.Actor(c)); err != nil {
		respondError(c, err, "send invoice")
		return
	}

	httpresp.Success(c)
}
