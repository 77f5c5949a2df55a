package provider

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resernova/resernova-api/db"
	"github.com/resernova/resernova-api/models"
	"github.com/resernova/resernova-api/wizard"
)

// StartWizard opens a wizard session, blank or pre-populated from an
// existing service when service_id is given.
func StartWizard(c *fiber.Ctx) error {
	prov, ok := requireProvider(c)
	if !ok {
		return nil
	}

	type StartInput struct {
		ServiceID uint `json:"service_id"`
	}
	input := new(StartInput)
	if err := c.BodyParser(input); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var state *wizard.State
	if input.ServiceID != 0 {
		var service models.Service
		if err := db.DB.Where("id = ? AND provider_id = ?", input.ServiceID, prov.ID).
			First(&service).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Service not found",
			})
		}
		state = wizard.NewFromService(&service)
	} else {
		state = wizard.New(prov.ID)
	}

	if err := Sessions.Save(c.Context(), state); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save wizard session",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(state)
}

// GetWizard returns the current session state.
func GetWizard(c *fiber.Ctx) error {
	state, ok := loadWizard(c)
	if !ok {
		return nil
	}
	return c.JSON(state)
}

// NextStep merges the posted fields into the form, validates the
// current step's subset, and advances only on success. Field errors
// come back as a 422 with the state untouched.
func NextStep(c *fiber.Ctx) error {
	state, ok := loadWizard(c)
	if !ok {
		return nil
	}

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&state.Form); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}
	}

	if errs := state.Next(); len(errs) > 0 {
		// Keep the merged fields so the user can correct in place.
		if err := Sessions.Save(c.Context(), state); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to save wizard session",
			})
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": errs,
			"step":   state.Step,
		})
	}

	if err := Sessions.Save(c.Context(), state); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save wizard session",
		})
	}
	return c.JSON(state)
}

// PrevStep goes back one step without validating anything.
func PrevStep(c *fiber.Ctx) error {
	state, ok := loadWizard(c)
	if !ok {
		return nil
	}
	state.Back()
	if err := Sessions.Save(c.Context(), state); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save wizard session",
		})
	}
	return c.JSON(state)
}

// EditAvailability applies one schedule edit: toggle a day, add the
// default slot, remove a slot, or overwrite a slot's times.
func EditAvailability(c *fiber.Ctx) error {
	state, ok := loadWizard(c)
	if !ok {
		return nil
	}
	if state.Step != wizard.StepAvailability {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Availability can only be edited on the availability step",
			"step":  state.Step,
		})
	}

	type AvailabilityEdit struct {
		Op    string `json:"op"`
		Day   string `json:"day"`
		Index int    `json:"index"`
		Open  string `json:"open"`
		Close string `json:"close"`
	}
	edit := new(AvailabilityEdit)
	if err := c.BodyParser(edit); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	applied := false
	switch edit.Op {
	case "toggle":
		applied = state.ToggleDay(edit.Day)
	case "add_slot":
		applied = state.AddSlot(edit.Day)
	case "remove_slot":
		applied = state.RemoveSlot(edit.Day, edit.Index)
	case "update_slot":
		applied = state.UpdateSlot(edit.Day, edit.Index, edit.Open, edit.Close)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown availability operation",
		})
	}
	if !applied {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid day or slot index",
		})
	}

	if err := Sessions.Save(c.Context(), state); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save wizard session",
		})
	}
	return c.JSON(state)
}

// SubmitWizard runs the full-schema validation and writes the service
// in one call: every form field except location_id, plus the resolved
// location address and the provider id. Failure keeps the session so
// the same submit can be retried.
func SubmitWizard(c *fiber.Ctx) error {
	state, ok := loadWizard(c)
	if !ok {
		return nil
	}

	if len(c.Body()) > 0 {
		if err := c.BodyParser(&state.Form); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Cannot parse JSON",
			})
		}
	}

	if errs := state.Finalize(); len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": errs,
		})
	}

	// The location selector only offers the provider's own locations;
	// enforce the same ownership here.
	var location models.Location
	if err := db.DB.Where("id = ? AND provider_id = ?", state.Form.LocationID, state.ProviderID).
		First(&location).Error; err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Selected location does not belong to this provider",
		})
	}

	service := models.Service{
		Name:         state.Form.Name,
		Description:  state.Form.Description,
		Price:        state.Form.Price,
		Duration:     state.Form.Duration,
		DurationUnit: state.Form.DurationUnit,
		CategoryID:   state.Form.CategoryID,
		LocationID:   location.ID,
		Location:     location.Address,
		Availability: state.Form.Availability,
		ProviderID:   state.ProviderID,
	}

	if state.ServiceID != 0 {
		var existing models.Service
		if err := db.DB.Where("id = ? AND provider_id = ?", state.ServiceID, state.ProviderID).
			First(&existing).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Service not found",
			})
		}
		service.ID = existing.ID
		service.CreatedAt = existing.CreatedAt
		service.Status = existing.Status
		if err := db.DB.Save(&service).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update service. Please try again.",
			})
		}
	} else {
		if err := db.DB.Create(&service).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create service. Please try again.",
			})
		}
	}

	// Best effort: a leftover draft ages out via TTL.
	_ = Sessions.Delete(c.Context(), state.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Service saved successfully",
		"service": service,
	})
}

func loadWizard(c *fiber.Ctx) (*wizard.State, bool) {
	prov, ok := requireProvider(c)
	if !ok {
		return nil, false
	}
	state, err := Sessions.Get(c.Context(), c.Params("id"))
	if err != nil {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Wizard session not found",
		})
		return nil, false
	}
	if state.ProviderID != prov.ID {
		c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Wizard session belongs to another provider",
		})
		return nil, false
	}
	return state, true
}
