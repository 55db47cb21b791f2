package middleware

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"

	"qa-assistant-be/internal/pkg/apierr"
	"qa-assistant-be/internal/pkg/logger"
)

// ErrorHandler maps every failure onto the uniform error envelope. All
// errors answer with status 500: existing clients branch on the success
// flag and the fixed messages, not on status codes.
func ErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		ApplyCORSHeaders(c)

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			switch fiberErr.Code {
			case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
				return envelope(c, fiber.Map{"message": apierr.NotFoundText})
			case fiber.StatusRequestTimeout:
				return envelope(c, fiber.Map{"message": apierr.TimeoutText})
			}
		}
		if errors.Is(err, os.ErrDeadlineExceeded) || errors.Is(err, fiber.ErrRequestTimeout) {
			return envelope(c, fiber.Map{"message": apierr.TimeoutText})
		}

		errorID := apierr.NewErrorID()

		message := apierr.ErrorText
		logIt := true
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, apierr.ErrInvalidJSON), errors.As(err, &syntaxErr), errors.As(err, &typeErr):
			message = apierr.InvalidJSONText
			logIt = false
		case errors.Is(err, apierr.ErrInvalidUsage):
			message = apierr.InvalidUsageText
			logIt = false
		default:
			if ue, ok := apierr.IsUser(err); ok {
				message = ue.Message
				logIt = false
			}
		}

		if logIt {
			log.Warn("http", "unexpected error", map[string]interface{}{
				"errorId": errorID,
				"method":  c.Method(),
				"path":    c.Path(),
				"error":   err.Error(),
			})
		}

		return envelope(c, fiber.Map{
			"message": message,
			"errorId": errorID,
		})
	}
}

func envelope(c *fiber.Ctx, result fiber.Map) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"result":  result,
	})
}
