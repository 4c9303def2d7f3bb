package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts the JSON API under /api/v1.
func Register(app *fiber.App, deps *Deps) {
	api := app.Group("/api/v1")

	products := api.Group("/products")
	products.Post("/", deps.ProductHandler.Create)
	products.Get("/", deps.ProductHandler.List)
	products.Get("/:id", deps.ProductHandler.Get)
	products.Put("/:id", deps.ProductHandler.Update)
	products.Delete("/:id", deps.ProductHandler.Delete)

	combos := api.Group("/combos")
	combos.Post("/", deps.ComboHandler.Create)
	combos.Get("/", deps.ComboHandler.List)
	combos.Get("/:id", deps.ComboHandler.Get)
	combos.Put("/:id", deps.ComboHandler.Update)
	combos.Delete("/:id", deps.ComboHandler.Delete)

	customers := api.Group("/customers")
	customers.Post("/", deps.CustomerHandler.Create)
	customers.Get("/", deps.CustomerHandler.List)
	customers.Get("/:id", deps.CustomerHandler.Get)
	customers.Put("/:id", deps.CustomerHandler.Update)
	customers.Delete("/:id", deps.CustomerHandler.Delete)

	employees := api.Group("/employees")
	employees.Post("/", deps.EmployeeHandler.Create)
	employees.Get("/", deps.EmployeeHandler.List)
	employees.Get("/:id", deps.EmployeeHandler.Get)
	employees.Put("/:id", deps.EmployeeHandler.Update)
	employees.Delete("/:id", deps.EmployeeHandler.Delete)

	orders := api.Group("/orders")
	orders.Post("/", deps.OrderHandler.Create)
	orders.Get("/", deps.OrderHandler.List)
	orders.Get("/:id", deps.OrderHandler.Get)
	orders.Put("/:id/status", deps.OrderHandler.UpdateStatus)
	orders.Delete("/:id", deps.OrderHandler.Delete)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
}
