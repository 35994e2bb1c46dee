package main

import (
	"log"

	"github.com/LeinadCybre1024/LandRegistry/config"
	"github.com/LeinadCybre1024/LandRegistry/database"
	adminRoutes "github.com/LeinadCybre1024/LandRegistry/routers/adminRoutes"
	authRoutes "github.com/LeinadCybre1024/LandRegistry/routers/authRoutes"
	propertyRoutes "github.com/LeinadCybre1024/LandRegistry/routers/propertyRoutes"
	"github.com/LeinadCybre1024/LandRegistry/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New(fiber.Config{
		// Registration carries two documents; leave headroom over the
		// per-file cap.
		BodyLimit: int(config.AppConfig.MaxFileSize) * 3,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5500, http://127.0.0.1:5500",
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: true, // session cookie
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	propertyRoutes.SetupPropertyRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	utils.InitializeCleanupScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
