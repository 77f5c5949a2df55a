package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/resernova/resernova-api/db"
	"github.com/resernova/resernova-api/models"
)

// GetCategories returns the flat category list, name-ordered.
func GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := db.DB.Order("name asc").Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get categories",
		})
	}
	return c.JSON(categories)
}

// BrowseServices is the public marketplace listing: active services
// only, optionally narrowed to a category.
func BrowseServices(c *fiber.Ctx) error {
	query := db.DB.Preload("Provider").Preload("Category").
		Where("status = ?", models.StatusActive)

	if categoryID := c.QueryInt("category_id"); categoryID > 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var services []models.Service
	if err := query.Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get services",
		})
	}
	return c.JSON(services)
}

// GetService returns one service with its provider and options.
func GetService(c *fiber.Ctx) error {
	id := c.Params("id")
	var service models.Service
	if err := db.DB.Preload("Provider").Preload("Category").Preload("Options").
		First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	return c.JSON(service)
}
