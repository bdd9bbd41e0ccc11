package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes understood by the HTTP boundary.
const (
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code,omitempty"`
	Details  string `json:"details,omitempty"`
	Redirect string `json:"redirect,omitempty"`
	Login    string `json:"login,omitempty"`
	Input    any    `json:"input,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	// Redirect names the read-only view a denied actor should be sent to.
	Redirect string
	Err      error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return NewNotFoundByError(resource, "ID", id)
}

// NewNotFoundByError is NewNotFoundError for lookups by a natural key such as
// a slug or a username.
func NewNotFoundByError(resource, field string, value interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with %s %v not found", resource, field, value),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthenticatedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthenticated,
		Message: message,
	}
}

// NewForbiddenError reports a mutation declined because the actor does not own
// the resource; redirect is the resource's canonical read view.
func NewForbiddenError(message, redirect string) *AppError {
	return &AppError{
		Code:     CodeForbidden,
		Message:  message,
		Redirect: redirect,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HasCode reports whether err is an AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// StatusFor maps an error onto the HTTP status the boundary should answer with.
func StatusFor(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthenticated:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusInternalServerError
	}
}

// LoginPath is where unauthenticated clients are pointed to obtain an identity.
const LoginPath = "/api/auth/login"

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(newErrorResponse(status, err))
}

// RespondWithInput is RespondWithError that also echoes the rejected input on
// validation failures so the client can re-present its form.
func RespondWithInput(c *fiber.Ctx, status int, err error, input any) error {
	response := newErrorResponse(status, err)
	if response.Code == CodeValidation {
		response.Input = input
	}
	return c.Status(status).JSON(response)
}

func newErrorResponse(status int, err error) ErrorResponse {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Error:    appErr.Message,
			Code:     appErr.Code,
			Redirect: appErr.Redirect,
		}
		if appErr.Err != nil && appErr.Code != CodeInternal {
			response.Details = appErr.Err.Error()
		}
		if appErr.Code == CodeUnauthenticated {
			response.Login = LoginPath
		}
	} else if status >= fiber.StatusInternalServerError {
		response = ErrorResponse{
			Error: "Internal server error",
			Code:  CodeInternal,
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}
	return response
}
