package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownPreference):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidReorder), errors.Is(err, ErrInvalidShareLink):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrTurnInFlight):
		RespondError(c, http.StatusConflict, "A response is already in progress")
	case errors.Is(err, ErrTransitionNotAllowed):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNoPlan):
		RespondError(c, http.StatusNotFound, "No itinerary plan available")
	case errors.Is(err, ErrChatNotInitialized):
		RespondError(c, http.StatusServiceUnavailable, "Chat is not initialized. Please restart the concierge.")
	case errors.Is(err, ErrExportFailed):
		log.Printf("Export error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Export failed")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
