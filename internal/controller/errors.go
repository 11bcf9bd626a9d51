package controller

import (
	"errors"

	"taskflow-client/internal/service"

	"github.com/gofiber/fiber/v2"
)

// failure maps a service error to the envelope status the client expects.
func failure(err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrProjectLimit):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrTaskNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return err
}
