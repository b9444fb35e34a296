// Package apperrors defines the application error taxonomy and its mapping
// to HTTP status codes and JSON error bodies.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Code is a machine-readable error code carried in error responses.
type Code string

const (
	CodeBadRequest    Code = "BAD_REQUEST"
	CodeUnauthorized  Code = "UNAUTHORIZED"
	CodeForbidden     Code = "FORBIDDEN"
	CodeNotFound      Code = "NOT_FOUND"
	CodeConflict      Code = "CONFLICT"
	CodeExpiredCode   Code = "CODE_EXPIRED"
	CodeInvalidCode   Code = "INVALID_CODE"
	CodeEmailMismatch Code = "EMAIL_MISMATCH"
	CodeInternal      Code = "INTERNAL_ERROR"
)

// AppError is an expected failure a handler can turn into a structured
// response. Anything that is not an *AppError surfaces as a 500.
type AppError struct {
	Code    Code   `json:"error_code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.cause }

// Is lets errors.Is match two AppErrors on code alone, so services can
// compare against the sentinel constructors without caring about message.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithCause attaches the underlying error and returns the receiver.
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

func BadRequest(format string, args ...any) *AppError {
	return &AppError{Code: CodeBadRequest, Message: fmt.Sprintf(format, args...), Status: fiber.StatusBadRequest}
}

func Unauthorized(format string, args ...any) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...), Status: fiber.StatusUnauthorized}
}

func Forbidden(format string, args ...any) *AppError {
	return &AppError{Code: CodeForbidden, Message: fmt.Sprintf(format, args...), Status: fiber.StatusForbidden}
}

func NotFound(format string, args ...any) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...), Status: fiber.StatusNotFound}
}

func Conflict(format string, args ...any) *AppError {
	return &AppError{Code: CodeConflict, Message: fmt.Sprintf(format, args...), Status: fiber.StatusConflict}
}

func ExpiredCode(format string, args ...any) *AppError {
	return &AppError{Code: CodeExpiredCode, Message: fmt.Sprintf(format, args...), Status: fiber.StatusBadRequest}
}

func InvalidCode(format string, args ...any) *AppError {
	return &AppError{Code: CodeInvalidCode, Message: fmt.Sprintf(format, args...), Status: fiber.StatusBadRequest}
}

func EmailMismatch(format string, args ...any) *AppError {
	return &AppError{Code: CodeEmailMismatch, Message: fmt.Sprintf(format, args...), Status: fiber.StatusBadRequest}
}

// Respond writes err as a structured JSON error response. Non-AppError
// values are reported as a generic internal failure without leaking the
// underlying message.
func Respond(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(appErr)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(&AppError{
		Code:    CodeInternal,
		Message: "internal server error",
	})
}
