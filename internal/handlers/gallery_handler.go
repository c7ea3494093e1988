package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/httpresp"
	"github.com/timbermagic/timbermagic-api/internal/middleware"
	"github.com/timbermagic/timbermagic-api/internal/models"
)

type GalleryHandler struct {
	db    *gorm.DB
	audit audit.Recorder
}

func NewGalleryHandler(db *gorm.DB, rec audit.Recorder) *GalleryHandler {
	return &GalleryHandler{db: db, audit: rec}
}

// --------- Requests ---------

type GalleryItemRequest struct {
	TitleEN       string `json:"title_en" binding:"required"`
	TitleHE       string `json:"title_he"`
	DescriptionEN string `json:"description_en"`
	DescriptionHE string `json:"description_he"`
	ImageURL      string `json:"image_url" binding:"required"`
	ThumbnailURL  string `json:"thumbnail_url"`
	Category      string `json:"category"`
	IsFeatured    bool   `json:"is_featured"`
}

type UpdateGalleryItemRequest struct {
	ID uuid.UUID `json:"id" binding:"required"`
	GalleryItemRequest
}

func (r GalleryItemRequest) apply(item *models.GalleryItem) {
	item.TitleEN = r.TitleEN
	item.TitleHE = r.TitleHE
	item.DescriptionEN = r.DescriptionEN
	item.DescriptionHE = r.DescriptionHE
	item.ImageURL = r.ImageURL
	item.ThumbnailURL = r.ThumbnailURL
	item.Category = r.Category
	item.IsFeatured = r.IsFeatured
}

// --------- Handlers ---------

func (h *GalleryHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Order("created_at DESC")
	if c.Query("featured") == "true" {
		q = q.Where("is_featured = ?", true)
	}

	var items []models.GalleryItem
	if err := q.Find(&items).Error; err != nil {
		respondError(c, err, "list gallery")
		return
	}

	httpresp.List(c, items)
}

func (h *GalleryHandler) Create(c *gin.Context) {
	var req GalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var item models.GalleryItem
	req.apply(&item)

	if err := h.db.WithContext(c.Request.Context()).Create(&item).Error; err != nil {
		respondError(c, err, "create gallery item")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   "gallery_created",
		Entity:   "gallery",
		EntityID: item.ID.String(),
	})

	httpresp.Created(c, item)
}

// Update replaces every editable field of the item.
func (h *GalleryHandler) Update(c *gin.Context) {
	var req UpdateGalleryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var item models.GalleryItem
	if err := db.First(&item, "id = ?", req.ID).Error; err != nil {
		respondError(c, notFoundOr(err, "gallery_item_not_found"), "get gallery item")
		return
	}

	req.apply(&item)

	res := db.Model(&item).
		Select("title_en", "title_he", "description_en", "description_he", "image_url", "thumbnail_url", "category", "is_featured").
		Updates(&item)
	if res.Error != nil {
		respondError(c, res.Error, "update gallery item")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "gallery_item_not_found", "Gallery item not found")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   "gallery_updated",
		Entity:   "gallery",
		EntityID: item.ID.String(),
	})

	httpresp.OK(c, item)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id, ok := queryID(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&models.GalleryItem{}, "id = ?", id).Error; err != nil {
		respondError(c, err, "delete gallery item")
		return
	}

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   "gallery_deleted",
		Entity:   "gallery",
		EntityID: id.String(),
	})

	httpresp.NoContent(c)
}
