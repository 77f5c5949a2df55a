package db

import (
	"fmt"
	"log"

	"github.com/resernova/resernova-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	// Run AutoMigrate only when explicitly called
	err := DB.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Location{},
		&models.Category{},
		&models.Service{},
		&models.ServiceOption{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedCategories()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedCategories fills the read-only category list. Existing rows are
// left alone.
func seedCategories() {
	categories := []models.Category{
		{Name: "Spa & Wellness"},
		{Name: "Tours & Experiences"},
		{Name: "Dining"},
		{Name: "Fitness"},
		{Name: "Beauty"},
		{Name: "Photography"},
		{Name: "Events & Entertainment"},
	}

	for _, category := range categories {
		var existing models.Category
		if DB.Where("name = ?", category.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&category)
		}
	}
}
