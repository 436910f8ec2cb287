package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// FieldError carries field-level validation detail back to the caller.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type HTTPError struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func Write(c *gin.Context, status int, message string) {
	c.JSON(status, HTTPError{
		OK:      false,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, message)
}

func Validation(c *gin.Context, message string, fields []FieldError) {
	c.JSON(http.StatusBadRequest, HTTPError{
		OK:      false,
		Message: message,
		Errors:  fields,
	})
}

func Unauthorized(c *gin.Context, message string) {
	Write(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Write(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Write(c, http.StatusNotFound, message)
}

func Internal(c *gin.Context, message string) {
	Write(c, http.StatusInternalServerError, message)
}
