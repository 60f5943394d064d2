package main

import (
	"log"

	"sortear_api/config"
	"sortear_api/database"
	"sortear_api/helper"
	"sortear_api/router"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // banners de promoção
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartPromotionStatusScheduler()
	defer helper.StopPromotionStatusScheduler()
	helper.StartResetTokenCleanup()
	defer helper.StopResetTokenCleanup()

	router.SetupRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "8002"
	}
	log.Fatal(app.Listen(":" + port))
}
