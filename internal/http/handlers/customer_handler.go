package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "fastbite/internal/log"
	"fastbite/internal/services"
)

type CustomerHandler struct {
	Customers *services.CustomerService
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in services.CustomerInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	cust, err := h.Customers.Create(in)
	if err != nil {
		return renderError(c, err)
	}
	applog.Audit(c, "customer.create", map[string]any{"customer_id": cust.ID})
	return c.Status(fiber.StatusCreated).JSON(cust)
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.Customers.List()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	cust, err := h.Customers.Get(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(cust)
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var patch services.CustomerPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	cust, err := h.Customers.Update(c.Params("id"), patch)
	if err != nil {
		return renderError(c, err)
	}
	applog.Audit(c, "customer.update", map[string]any{"customer_id": cust.ID})
	return c.JSON(cust)
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	outcome, err := h.Customers.SoftDelete(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return renderSoftDelete(c, outcome, "customer")
}
