package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resernova/resernova-api/controllers"
)

// SetupCatalogRoutes configures the public browse routes
func SetupCatalogRoutes(app *fiber.App) {
	app.Get("/categories", controllers.GetCategories)

	services := app.Group("/services")
	services.Get("/", controllers.BrowseServices)
	services.Get("/:id", controllers.GetService)
}
