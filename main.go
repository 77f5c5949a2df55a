package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/resernova/resernova-api/controllers/provider"
	"github.com/resernova/resernova-api/cron"
	"github.com/resernova/resernova-api/db"
	"github.com/resernova/resernova-api/middleware"
	"github.com/resernova/resernova-api/redis"
	"github.com/resernova/resernova-api/routes"
	"github.com/resernova/resernova-api/wizard"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		db.Migrate()
		return
	}

	app := fiber.New()
	db.Init()
	redis.InitRedis()

	provider.Sessions = wizard.NewRedisStore(redis.Client)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(middleware.Guard(db.DB))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ReserNova API")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	routes.SetupAuthRoutes(app)
	routes.SetupCatalogRoutes(app)
	routes.SetupDashboardRoutes(app)

	cron.StartCronJobs()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Fatal(app.Listen(":" + port))
}
