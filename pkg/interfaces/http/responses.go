package http

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/borderlesspc7/281-carlos/pkg/domain/entities"
	"github.com/borderlesspc7/281-carlos/pkg/infrastructure/storage"
)

var validate = validator.New()

func success(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"status": "success", "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "success", "data": data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"status": "error", "message": message})
}

// parseBody decodes and validates a JSON request body into dst
func parseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// errorHandler maps domain errors onto status codes for every route
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fail(c, fe.Code, fe.Message)
	case errors.Is(err, entities.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrInvalidApprovalToken):
		return fail(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, entities.ErrAlreadyDecided):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, entities.ErrQuantityExceedsBudget):
		return fail(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.As(err, new(*validationError)):
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	log.Printf("%s %s failed: %v", c.Method(), c.Path(), err)
	return fail(c, fiber.StatusInternalServerError, err.Error())
}

// validationError wraps input errors raised by entity constructors
type validationError struct {
	err error
}

func (e *validationError) Error() string { return e.err.Error() }

func (e *validationError) Unwrap() error { return e.err }

// invalid marks an error as caused by the request input unless it is a known domain error
func invalid(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range []error{entities.ErrNotFound, entities.ErrInvalidApprovalToken, entities.ErrAlreadyDecided, entities.ErrQuantityExceedsBudget} {
		if errors.Is(err, known) {
			return err
		}
	}
	return &validationError{err: err}
}
