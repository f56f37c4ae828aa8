package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"adboard/internal/apperror"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func Ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

// ServiceError maps a service failure onto the wire: missing entities and
// broken references are 404s, everything else surfaces as a client error with
// the underlying message verbatim.
func ServiceError(c *gin.Context, err error) {
	switch {
	case apperror.IsNotFound(err), apperror.IsReferential(err):
		Error(c, http.StatusNotFound, err.Error())
	case apperror.IsBadInput(err):
		Error(c, http.StatusBadRequest, err.Error())
	default:
		Error(c, http.StatusBadRequest, err.Error())
	}
}
