package routes

import (
	"go-meal-delivery/controllers"

	"github.com/gin-gonic/gin"
)

func MealRoutes(incomingRoutes *gin.Engine, ctl *controllers.MealController) {
	incomingRoutes.GET("/meals/:meal_id", ctl.GetMeal())
	incomingRoutes.POST("/meals/:meal_id/rating", ctl.RateMeal())
}
