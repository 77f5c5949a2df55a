package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resernova/resernova-api/controllers/provider"
	"github.com/resernova/resernova-api/middleware"
)

// SetupDashboardRoutes configures the provider dashboard routes
func SetupDashboardRoutes(app *fiber.App) {
	dashboard := app.Group("/dashboard", middleware.Protected())

	// Profile
	dashboard.Patch("/profile", provider.UpdateProfile)
	dashboard.Post("/profile/picture", provider.UpdateProfilePicture)

	// Locations
	dashboard.Get("/locations", provider.GetLocations)
	dashboard.Post("/locations", provider.CreateLocation)

	// Services catalog
	dashboard.Get("/services", provider.GetServices)
	dashboard.Patch("/services/:id/status", provider.UpdateServiceStatus)
	dashboard.Delete("/services/:id", provider.DeleteService)

	// Service options
	dashboard.Get("/services/:id/options", provider.GetServiceOptions)
	dashboard.Post("/services/:id/options", provider.CreateServiceOption)
	dashboard.Delete("/services/:id/options/:optionID", provider.DeleteServiceOption)

	// Service wizard
	wizard := dashboard.Group("/services/wizard")
	wizard.Post("/", provider.StartWizard)
	wizard.Get("/:id", provider.GetWizard)
	wizard.Post("/:id/next", provider.NextStep)
	wizard.Post("/:id/back", provider.PrevStep)
	wizard.Post("/:id/availability", provider.EditAvailability)
	wizard.Post("/:id/submit", provider.SubmitWizard)
}
