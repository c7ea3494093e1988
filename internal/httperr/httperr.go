package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error"`
	Message string `json:"message,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

func MethodNotAllowed(c *gin.Context) {
	Write(c, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed")
}

// Business writes err with the status its code maps to.
func Business(c *gin.Context, be BusinessError) {
	msg := be.Message
	if msg == "" {
		msg = be.Code
	}
	Write(c, StatusFor(be.Code), be.Code, msg)
}
