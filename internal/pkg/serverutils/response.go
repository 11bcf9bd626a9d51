package serverutils

import (
	"taskflow-client/internal/dto"

	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(ctx *fiber.Ctx, code int, message string, data interface{}) error {
	return ctx.Status(code).JSON(dto.BaseResponse[interface{}]{
		Success: true,
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(ctx *fiber.Ctx, code int, message string) error {
	return ctx.Status(code).JSON(dto.BaseResponse[interface{}]{
		Success: false,
		Code:    code,
		Message: message,
	})
}
