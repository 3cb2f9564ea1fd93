package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/shoestore/auth"
	"github.com/shoestore/store"
)

// fail maps the store/auth error taxonomy to HTTP statuses. Unknown
// errors are logged and returned as an opaque 500 so storage detail
// never reaches the caller.
func fail(c *fiber.Ctx, err error) error {
	var validationErr *store.ValidationError

	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"field":  validationErr.Field,
			"detail": validationErr.Message,
		})
	case errors.Is(err, store.ErrReferentialConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "record is still referenced"})
	case errors.Is(err, auth.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid login or password"})
	default:
		logrus.WithError(err).Error("Request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}

// dateFormats accepted on order input, newest first. Legacy exports
// used the dotted day-first form.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
}

func parseDate(field, value string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &store.ValidationError{Field: field, Message: "malformed date"}
}
