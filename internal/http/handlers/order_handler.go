package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "fastbite/internal/log"
	"fastbite/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in services.OrderInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	o, err := h.Orders.Create(in)
	if err != nil {
		applog.Warn(c, "order.create.reject", map[string]any{"error": err.Error()})
		return renderError(c, err)
	}
	applog.Audit(c, "order.create", map[string]any{
		"order_id": o.ID, "total": o.Total, "discount": o.Discount, "lines": len(o.Lines),
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (h *OrderHandler) List(c *fiber.Ctx) error {
	orders, err := h.Orders.List()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	o, err := h.Orders.Get(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(o)
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	o, err := h.Orders.UpdateStatus(c.Params("id"), in.Status)
	if err != nil {
		return renderError(c, err)
	}
	applog.Audit(c, "order.status", map[string]any{"order_id": o.ID, "status": o.Status})
	return c.JSON(o)
}

func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	outcome, err := h.Orders.SoftDelete(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return renderSoftDelete(c, outcome, "order")
}
