package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "fastbite/internal/log"
	"fastbite/internal/services"
)

type ProductHandler struct {
	Products *services.ProductService
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	p, err := h.Products.Create(in)
	if err != nil {
		return renderError(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// List returns active products; ?category= narrows the listing.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Products.List(c.Query("category"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	p, err := h.Products.Get(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var patch services.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c, err)
	}
	p, err := h.Products.Update(c.Params("id"), patch)
	if err != nil {
		return renderError(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": p.ID})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	outcome, err := h.Products.SoftDelete(c.Params("id"))
	if err != nil {
		return renderError(c, err)
	}
	return renderSoftDelete(c, outcome, "product")
}
