package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/taxi-dashboard/internal/models"
)

// Response codes. HTTP status carries the error class; Code distinguishes
// a successful cycle from the empty-result halt state, which is not an error.
const (
	CodeSuccess     = 0
	CodeEmptyResult = 1
)

// Response represents a standard API response
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// NoData sends the empty-result halt state: the request was valid but no
// trips matched, so no aggregation ran
func NoData(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeEmptyResult,
		Message: message,
	})
}

// Error sends an error response. err is attached for client diagnostics
// when present.
func Error(c *gin.Context, code int, message string, err error) {
	resp := Response{
		Code:    code,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
		_ = c.Error(err)
	}
	c.JSON(code, resp)
}

// BadRequest sends a 400 bad request response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message, nil)
}

// NotFound sends a 404 not found response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// InternalError sends a 500 internal server error response
func InternalError(c *gin.Context, message string, err error) {
	Error(c, http.StatusInternalServerError, message, err)
}

// FromError maps the halt states of a recompute cycle onto responses:
// validation -> 400 with the user message, empty result -> NoData,
// unknown aggregation -> 404, anything else -> 500
func FromError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		BadRequest(c, verr.Message)
	case errors.Is(err, models.ErrEmptyResult):
		NoData(c, models.EmptyResultMessage)
	case errors.Is(err, models.ErrUnknownAggregation):
		NotFound(c, err.Error())
	default:
		InternalError(c, "Failed to compute dashboard", err)
	}
}
