package utils

import (
	"errors"
	"fmt"
)

var (
	ErrDatabaseError      = errors.New("database error")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrPlanNotFound       = errors.New("plan not found")
	ErrDayNotFound        = errors.New("day not found")
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrInvalidPlan        = errors.New("plan does not exist")
	ErrDraftNotFound      = errors.New("draft not found or expired")
)

// ErrorKind classifies a failure for retry and propagation decisions.
type ErrorKind string

const (
	KindBadRequest   ErrorKind = "BAD_REQUEST"
	KindBadGateway   ErrorKind = "BAD_GATEWAY"
	KindInternal     ErrorKind = "INTERNAL"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindInvalidPlan  ErrorKind = "INVALID_PLAN"
)

// AppError is a classified error. Every failure leaving the planner is one of these.
type AppError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Kind: KindBadRequest, Message: message}
}

func NewBadGatewayError(message string, cause error) *AppError {
	return &AppError{Kind: KindBadGateway, Message: message, Cause: cause}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Cause: cause}
}

// NewTimeoutError marks a provider attempt that lost the race against its deadline.
func NewTimeoutError(message string) *AppError {
	return &AppError{Kind: KindBadGateway, Message: message, Cause: ErrGenerationTimeout}
}

// ErrGenerationTimeout is the cause carried by every timeout classification.
var ErrGenerationTimeout = errors.New("planner generation timeout")

// IsTimeout reports whether err is (or wraps) a generation timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrGenerationTimeout)
}

// KindOf returns the classification of err. Unclassified errors are INTERNAL.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MessageOf returns the classified message, or the raw error text.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
