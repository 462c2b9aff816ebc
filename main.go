package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"seatmap_manager/config"
	"seatmap_manager/database"
	"seatmap_manager/helper"
	"seatmap_manager/queue"
	"seatmap_manager/router"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 4 * 1024 * 1024,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.Default("CORS_ORIGINS", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	database.ConnectDB()

	if config.Config("RABBITMQ_URL") != "" {
		queue.Default = queue.NewPublisher()
	}

	helper.StartSeatLockScheduler()
	defer helper.StopSeatLockScheduler()
	helper.StartElementPurgeScheduler()
	defer helper.StopElementPurgeScheduler()

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":" + config.Default("APP_PORT", "8002")))
}
