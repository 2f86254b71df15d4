package utils

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse sends a standard error response
func ErrorResponse(c *fiber.Ctx, message string, status int, errorType string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":    status,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	})
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status":    fiber.StatusNotFound,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}

// ValidationErrorResponse sends a 422 response naming the offending fields
func ValidationErrorResponse(c *fiber.Ctx, fields []string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"status":    fiber.StatusUnprocessableEntity,
		"message":   "Invalid input",
		"ok":        false,
		"fields":    fields,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      "validation",
	})
}

// EnvelopeResponse sends the {success, message, data} wrapper used by the
// KPA form endpoints
func EnvelopeResponse(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// EnvelopeErrorResponse sends a failed {success, message} wrapper for the
// KPA form endpoints
func EnvelopeErrorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int      `json:"status"`
	Message   string   `json:"message"`
	Ok        bool     `json:"ok"`
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Type      string   `json:"type,omitempty"`
	Fields    []string `json:"fields,omitempty"`
}

// EnvelopeResponseStruct defines the schema for KPA envelope responses
type EnvelopeResponseStruct struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}
