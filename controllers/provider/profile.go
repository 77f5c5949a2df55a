package provider

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/resernova/resernova-api/db"
	"github.com/resernova/resernova-api/models"
	"github.com/resernova/resernova-api/utils"
)

// UpdateProfile edits the caller's name/phone and, for businesses, the
// provider fields.
func UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	type ProfileInput struct {
		Name         string `json:"name"`
		PhoneNumber  string `json:"phone_number"`
		BusinessName string `json:"business_name"`
		Description  string `json:"description"`
	}
	input := new(ProfileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = input.PhoneNumber
	}
	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	if input.BusinessName != "" || input.Description != "" {
		var prov models.Provider
		if db.DB.Where("user_id = ?", userID).First(&prov).RowsAffected > 0 {
			if input.BusinessName != "" {
				prov.BusinessName = input.BusinessName
			}
			if input.Description != "" {
				prov.Description = input.Description
			}
			if err := db.DB.Save(&prov).Error; err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Failed to update business profile",
				})
			}
		}
	}

	user.Password = ""
	user.OTP = ""
	return c.JSON(user)
}

// UpdateProfilePicture uploads the posted image and stores its URL.
func UpdateProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	fileHeader, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing picture file",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to read picture file",
		})
	}
	defer file.Close()

	publicID := fmt.Sprintf("user_%d", userID)
	url, err := utils.UploadToCloudinary(file, publicID, "profile_pictures")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload picture",
		})
	}

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}
	user.ProfilePicture = url
	if err := db.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save picture URL",
		})
	}

	return c.JSON(fiber.Map{
		"profile_picture": url,
	})
}
