package serverutils

import (
	"errors"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware turns errors returned by handlers into the
// standard envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		return ErrorResponse(ctx, code, message)
	}
}

// ValidateRequest parses the JSON body into out and checks its validate tags.
func ValidateRequest(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validation.Struct(out); err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return fiber.NewError(fiber.StatusBadRequest, appErr.UserMessage())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
