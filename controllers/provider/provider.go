// Package provider holds the dashboard-side controllers: the service
// wizard, locations, the services catalog and profile management.
// Every handler here runs behind the Protected middleware and is
// scoped to the caller's own provider record.
package provider

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resernova/resernova-api/db"
	"github.com/resernova/resernova-api/models"
	"github.com/resernova/resernova-api/resolver"
	"github.com/resernova/resernova-api/wizard"
)

// Sessions is the wizard session store, wired in main (Redis in
// production, memory in tests).
var Sessions wizard.Store = wizard.NewMemoryStore()

// currentProvider resolves the caller to their provider record. A nil
// provider means the account is not a business.
func currentProvider(c *fiber.Ctx) (*models.Provider, error) {
	userID := c.Locals("userID").(uint)
	res, err := resolver.Resolve(db.DB, userID)
	if err != nil {
		return nil, err
	}
	return res.Provider, nil
}

// requireProvider is the shared guard for dashboard handlers: a 422
// when the account has no business profile.
func requireProvider(c *fiber.Ctx) (*models.Provider, bool) {
	prov, err := currentProvider(c)
	if err != nil {
		c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve provider",
		})
		return nil, false
	}
	if prov == nil {
		c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "No service provider profile for this account",
		})
		return nil, false
	}
	return prov, true
}
