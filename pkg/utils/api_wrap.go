package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status    string      `json:"status"`
	Code      int         `json:"code"`
	ErrorCode string      `json:"error_code,omitempty"`
	Message   string      `json:"message,omitempty"`
	TraceID   string      `json:"trace_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusOK, data, message)
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	respond(c, http.StatusCreated, data, message)
}

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, APIResponse{
		Status:  "success",
		Code:    status,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	RespondClassifiedError(c, code, kindForStatus(code), message)
}

func RespondClassifiedError(c *gin.Context, code int, kind ErrorKind, message string) {
	c.JSON(code, APIResponse{
		Status:    "error",
		Code:      code,
		ErrorCode: string(kind),
		Message:   message,
		TraceID:   c.GetString("trace_id"),
	})
}

// HandleServiceError maps sentinel and classified service errors onto HTTP responses.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidPlan):
		RespondClassifiedError(c, http.StatusBadRequest, KindInvalidPlan, "Plan does not exist")
	case errors.Is(err, ErrEmailAlreadyExists):
		RespondError(c, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrAccountNotFound):
		RespondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, ErrForbidden):
		RespondError(c, http.StatusForbidden, "Not your plan")
	case errors.Is(err, ErrPlanNotFound):
		RespondError(c, http.StatusNotFound, "Plan not found")
	case errors.Is(err, ErrDayNotFound):
		RespondError(c, http.StatusNotFound, "Day not found")
	case errors.Is(err, ErrExpenseNotFound):
		RespondError(c, http.StatusNotFound, "Expense not found")
	case errors.Is(err, ErrDraftNotFound):
		RespondError(c, http.StatusNotFound, "Draft not found or expired")
	case errors.Is(err, ErrDatabaseError):
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		kind := KindOf(err)
		message := MessageOf(err)
		if kind == KindInternal {
			message = "Internal server error"
		}
		RespondClassifiedError(c, StatusForKind(kind), kind, message)
	}
}

// StatusForKind maps an error classification to its HTTP status.
func StatusForKind(kind ErrorKind) int {
	switch kind {
	case KindBadRequest, KindInvalidPlan:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindBadGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadGateway:
		return KindBadGateway
	default:
		return KindInternal
	}
}
