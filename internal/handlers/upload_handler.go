package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/timbermagic/timbermagic-api/internal/audit"
	"github.com/timbermagic/timbermagic-api/internal/dto"
	"github.com/timbermagic/timbermagic-api/internal/httperr"
	"github.com/timbermagic/timbermagic-api/internal/httpresp"
	"github.com/timbermagic/timbermagic-api/internal/imaging"
	"github.com/timbermagic/timbermagic-api/internal/infra/storage"
	"github.com/timbermagic/timbermagic-api/internal/middleware"
)

// multipartSlack leaves room for the form framing around the file itself.
const multipartSlack = 1 << 20

type UploadHandler struct {
	storage  storage.Storage
	audit    audit.Recorder
	maxBytes int64
}

func NewUploadHandler(store storage.Storage, rec audit.Recorder, maxBytes int64) *UploadHandler {
	return &UploadHandler{storage: store, audit: rec, maxBytes: maxBytes}
}

// Upload takes the multipart field "file", re-encodes it as WebP with a
// thumbnail and stores both under gallery/.
func (h *UploadHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartSlack)

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the upload limit")
			return
		}
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "multipart field \"file\" is required")
		return
	}
	if fh.Size > h.maxBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the upload limit")
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, err, "open upload")
		return
	}
	defer f.Close()

	res, err := imaging.Process(f)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupported) {
			httperr.BadRequest(c, "invalid_image", "File is not a supported image")
			return
		}
		if errors.Is(err, imaging.ErrTooManyPixels) {
			httperr.BadRequest(c, "image_too_large", "Image dimensions are too large")
			return
		}
		respondError(c, err, "process upload")
		return
	}

	ctx := c.Request.Context()
	key := uuid.NewString()

	url, err := h.storage.Put(ctx, "gallery/"+key+".webp", imaging.ContentType, res.Main)
	if err != nil {
		respondError(c, err, "store image")
		return
	}

	thumbURL, err := h.storage.Put(ctx, "gallery/thumbs/"+key+".webp", imaging.ContentType, res.Thumb)
	if err != nil {
		respondError(c, err, "store thumbnail")
		return
	}

	logrus.WithFields(logrus.Fields{
		"key":     key,
		"storage": h.storage.Name(),
		"width":   res.Width,
		"height":  res.Height,
		"bytes":   len(res.Main),
	}).Info("image uploaded")

	h.audit.Dispatch(audit.Event{
		Actor:    middleware.Actor(c),
		Action:   "image_uploaded",
		Entity:   "upload",
		EntityID: key,
		Metadata: map[string]any{"filename": fh.Filename, "storage": h.storage.Name()},
	})

	httpresp.Created(c, dto.UploadResponseDTO{URL: url, ThumbnailURL: thumbURL})
}
