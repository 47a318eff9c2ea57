package presenter

import (
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const internalMessage = "internal server error"

type ErrorResponse struct {
	Message string `json:"message"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Internal logs err with the operation name and answers 500 with a generic message.
func Internal(c *fiber.Ctx, log *slog.Logger, op string, err error) error {
	log.ErrorContext(c.UserContext(), "request failed",
		"op", op,
		"method", c.Method(),
		"path", c.Path(),
		"error", err,
	)
	return Error(c, http.StatusInternalServerError, internalMessage)
}
