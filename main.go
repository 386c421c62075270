package main

import (
	"context"
	"log"
	"os"
	"time"

	"go-meal-delivery/controllers"
	"go-meal-delivery/database"
	"go-meal-delivery/middleware"
	"go-meal-delivery/routes"
	"go-meal-delivery/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	client, err := database.Connect(context.Background())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer client.Disconnect(context.Background())

	store := database.NewMongoStore(client)
	hub := controllers.NewWsHub()

	notificationService := services.NewNotificationService(store, hub)
	ratingService := services.NewRatingService(store)
	orderService := services.NewOrderService(store, notificationService)
	deliveryService := services.NewDeliveryService(store)

	userController := controllers.NewUserController(database.OpenCollection(client, "users"))
	orderController := controllers.NewOrderController(orderService)
	deliveryController := controllers.NewDeliveryController(deliveryService)
	mealController := controllers.NewMealController(ratingService)
	notificationController := controllers.NewNotificationController(notificationService)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Enable CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:9000"},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.UserRoutes(router, userController, hub)
	router.Use(middleware.Authentication())
	routes.ProtectedUserRoutes(router, userController)
	routes.OrderRoutes(router, orderController)
	routes.DeliveryRoutes(router, deliveryController)
	routes.MealRoutes(router, mealController)
	routes.NotificationRoutes(router, notificationController)

	// Retention sweep for read notifications.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			if err := notificationService.CleanupExpired(ctx); err != nil {
				log.Printf("notification cleanup failed: %v", err)
			}
			cancel()
		}
	}()

	router.Run(":" + port)
}
