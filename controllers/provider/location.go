package provider

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resernova/resernova-api/db"
	"github.com/resernova/resernova-api/models"
	"github.com/resernova/resernova-api/utils"
)

type LocationInput struct {
	Name       string   `json:"name" validate:"required"`
	Address    string   `json:"address" validate:"required"`
	City       string   `json:"city" validate:"required"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country" validate:"required"`
	Phone      string   `json:"phone" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// CreateLocation adds a location for the caller's provider. The
// provider id always comes from the resolved session, never from the
// payload, and is immutable afterwards.
func CreateLocation(c *fiber.Ctx) error {
	prov, ok := requireProvider(c)
	if !ok {
		return nil
	}

	input := new(LocationInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if err := utils.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": utils.ValidationErrors(err),
		})
	}

	location := models.Location{
		ProviderID: prov.ID,
		Address:    input.Address,
		ContactInfo: models.ContactInfo{
			Name:       input.Name,
			City:       input.City,
			PostalCode: input.PostalCode,
			Country:    input.Country,
			Phone:      input.Phone,
			Email:      input.Email,
		},
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}

	if err := db.DB.Create(&location).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add location. Please try again.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(location)
}

// GetLocations lists the caller's locations, address-ordered — the
// same order the wizard's location selector shows them in.
func GetLocations(c *fiber.Ctx) error {
	prov, ok := requireProvider(c)
	if !ok {
		return nil
	}

	var locations []models.Location
	if err := db.DB.Where("provider_id = ?", prov.ID).
		Order("address asc").Find(&locations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get locations",
		})
	}
	return c.JSON(locations)
}
