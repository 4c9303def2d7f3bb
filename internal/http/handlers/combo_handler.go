package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "fastbite/internal/log"
	"fastbite/internal/services"
)

type ComboHandler struct {
	Combos *services.ComboService
}

func (h *ComboHandler) Create(c *fiber.Ctx) error {
	var in services.ComboInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	cb, err := h.Combos.Create(in)
	if err != nil {
		return renderError(c, err)
	}
	applog.Audit(c, "combo.create", map[string]any{"combo_id": cb.ID, "price": cb.Price})
	return c.Status(fiber.StatusCreated).JSON(cb)
}

func (h *ComboHandler) List(c *fiber.Ctx) error {
	combos, err := h.Combos.List()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(combos)
}

func (h *ComboHandler) Get(c *fiber.Ctx) error {
	cb, err := h.Combos.Get(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(cb)
}

func (h *ComboHandler) Update(c *fiber.Ctx) error {
	var patch services.ComboPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	cb, err := h.Combos.Update(c.Params("id"), patch)
	if err != nil {
		return renderError(c, err)
	}
	applog.Audit(c, "combo.update", map[string]any{"combo_id": cb.ID, "price": cb.Price})
	return c.JSON(cb)
}

func (h *ComboHandler) Delete(c *fiber.Ctx) error {
	outcome, err := h.Combos.SoftDelete(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return renderSoftDelete(c, outcome, "combo")
}
