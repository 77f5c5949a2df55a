package provider

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resernova/resernova-api/db"
	"github.com/resernova/resernova-api/models"
	"github.com/resernova/resernova-api/utils"
)

// GetServices lists the caller's services with the catalog filters:
// free-text search over name/description and a status filter.
func GetServices(c *fiber.Ctx) error {
	prov, ok := requireProvider(c)
	if !ok {
		return nil
	}

	query := db.DB.Preload("Category").Preload("Options").
		Where("provider_id = ?", prov.ID)

	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	if status := c.Query("status"); status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var services []models.Service
	if err := query.Order("created_at desc").Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get services",
		})
	}
	return c.JSON(services)
}

// UpdateServiceStatus moves a service between draft, active and
// inactive.
func UpdateServiceStatus(c *fiber.Ctx) error {
	prov, ok := requireProvider(c)
	if !ok {
		return nil
	}

	type StatusInput struct {
		Status models.ServiceStatus `json:"status" validate:"required,oneof=active inactive draft"`
	}
	input := new(StatusInput)
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

	var service models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", c.Params("id"), prov.ID).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}

	service.Status = input.Status
	if err := db.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update service",
		})
	}
	return c.JSON(service)
}

// DeleteService removes one of the caller's services.
func DeleteService(c *fiber.Ctx) error {
	prov, ok := requireProvider(c)
	if !ok {
		return nil
	}

	var service models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", c.Params("id"), prov.ID).
		First(&service).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	if err := db.DB.Delete(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete service",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetServiceOptions lists a service's add-ons.
func GetServiceOptions(c *fiber.Ctx) error {
	service, ok := ownService(c)
	if !ok {
		return nil
	}

	var options []models.ServiceOption
	if err := db.DB.Where("service_id = ?", service.ID).Find(&options).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get service options",
		})
	}
	return c.JSON(options)
}

// CreateServiceOption adds an add-on independently of the service
// record itself.
func CreateServiceOption(c *fiber.Ctx) error {
	service, ok := ownService(c)
	if !ok {
		return nil
	}

	type OptionInput struct {
		Name     string  `json:"name" validate:"required"`
		Price    float64 `json:"price" validate:"gte=0"`
		Duration int     `json:"duration" validate:"gte=0"`
	}
	input := new(OptionInput)
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

	option := models.ServiceOption{
		ServiceID: service.ID,
		Name:      input.Name,
		Price:     input.Price,
		Duration:  input.Duration,
	}
	if err := db.DB.Create(&option).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create service option",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(option)
}

// DeleteServiceOption removes an add-on.
func DeleteServiceOption(c *fiber.Ctx) error {
	service, ok := ownService(c)
	if !ok {
		return nil
	}

	var option models.ServiceOption
	if err := db.DB.Where("id = ? AND service_id = ?", c.Params("optionID"), service.ID).
		First(&option).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service option not found",
		})
	}
	if err := db.DB.Delete(&option).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete service option",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func ownService(c *fiber.Ctx) (*models.Service, bool) {
	prov, ok := requireProvider(c)
	if !ok {
		return nil, false
	}
	var service models.Service
	if err := db.DB.Where("id = ? AND provider_id = ?", c.Params("id"), prov.ID).
		First(&service).Error; err != nil {
		c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
		return nil, false
	}
	return &service, true
}
