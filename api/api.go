package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Error is a request-scoped failure with an HTTP status and optional detail
// payload (e.g. a field->bool map for validation failures).
type Error struct {
	Code    int
	Message string
	Details any
}

func (e *Error) Error() string { return e.Message }

func NewError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

func ValidationError(message string, details any) *Error {
	return &Error{Code: fiber.StatusBadRequest, Message: message, Details: details}
}

// Success sends the uniform success envelope.
func Success(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func fail(c *fiber.Ctx, status int, message string, details any) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"errors":  details,
	})
}

// ErrorHandler is the global Fiber error handler. Known error types keep
// their status and message; everything else is logged and returned as a
// generic 500 so internals never leak to callers.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return fail(c, apiErr.Code, apiErr.Message, apiErr.Details)
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fail(c, fiberErr.Code, fiberErr.Message, nil)
	}
	log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return fail(c, fiber.StatusInternalServerError,
		"Something went wrong. Please try again later.", nil)
}
