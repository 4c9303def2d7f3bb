package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"fastbite/internal/domain"
	applog "fastbite/internal/log"
)

// renderError maps the domain error taxonomy onto HTTP statuses:
// FORMAT and BUSINESS_RULE are 400, NOT_FOUND is 404, CONFLICT is 409.
// Anything untyped is a 500 and gets logged.
func renderError(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		status := fiber.StatusBadRequest
		switch de.Kind {
		case domain.KindNotFound:
			status = fiber.StatusNotFound
		case domain.KindConflict:
			status = fiber.StatusConflict
		}
		body := fiber.Map{"error": de.Message, "kind": de.Kind}
		if de.Field != "" {
			body["field"] = de.Field
		}
		return c.Status(status).JSON(body)
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func renderSoftDelete(c *fiber.Ctx, outcome domain.SoftDeleteOutcome, entity string) error {
	switch outcome {
	case domain.SoftDeleteDone:
		applog.Audit(c, entity+".softdelete", map[string]any{"id": c.Params("id")})
		return c.JSON(fiber.Map{"deleted": true})
	case domain.SoftDeleteNoOp:
		// Already inactive: a defined no-op, not an error.
		return c.SendStatus(fiber.StatusNoContent)
	default:
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": entity + " not found", "kind": domain.KindNotFound,
		})
	}
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "malformed request body: " + err.Error(), "kind": domain.KindFormat,
	})
}
