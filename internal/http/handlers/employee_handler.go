package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "fastbite/internal/log"
	"fastbite/internal/services"
)

type EmployeeHandler struct {
	Employees *services.EmployeeService
}

func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var in services.EmployeeInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	e, err := h.Employees.Create(in)
	if err != nil {
		return renderError(c, err)
	}
	applog.Audit(c, "employee.create", map[string]any{"employee_id": e.ID, "role": e.Role})
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	employees, err := h.Employees.List()
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(employees)
}

func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	e, err := h.Employees.Get(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(e)
}

func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	var patch services.EmployeePatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	e, err := h.Employees.Update(c.Params("id"), patch)
	if err != nil {
		return renderError(c, err)
	}
	applog.Audit(c, "employee.update", map[string]any{"employee_id": e.ID})
	return c.JSON(e)
}

func (h *EmployeeHandler) Delete(c *fiber.Ctx) error {
	outcome, err := h.Employees.SoftDelete(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return renderSoftDelete(c, outcome, "employee")
}
