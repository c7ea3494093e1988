package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/timbermagic/timbermagic-api/internal/httperr"
)

// respondError maps business errors to their status and hides everything
// else behind a logged 500.
func respondError(c *gin.Context, err error, op string) {
	if be, ok := httperr.AsBusiness(err); ok {
		httperr.Business(c, be)
		return
	}

	logrus.WithError(err).WithFields(logrus.Fields{
		"op":   op,
		"path": c.Request.URL.Path,
	}).Error("request failed")
	_ = c.Error(err)
	httperr.Internal(c, httperr.CodeInternal, "Internal server error")
}

func respondBindError(c *gin.Context, err error) {
	httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
}

// notFoundOr turns gorm.ErrRecordNotFound into the given business code.
func notFoundOr(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// queryID reads ?id=. ok is false when the response has already been written.
func queryID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.Query("id")
	if raw == "" {
		httperr.BadRequest(c, httperr.CodeIDRequired, "ID required")
		return uuid.Nil, false
	}
	return parseID(c, raw)
}

func parseID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
