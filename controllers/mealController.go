package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-meal-delivery/services"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	ratings *services.RatingService
}

func NewMealController(ratings *services.RatingService) *MealController {
	return &MealController{ratings: ratings}
}

type rateMealRequest struct {
	Rating int `json:"rating" validate:"required"`
}

// RateMeal records the authenticated user's 1..5 star rating.
func (ctl *MealController) RateMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		mealId := c.Param("meal_id")
		var req rateMealRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		err := ctl.ratings.Rate(ctx, mealId, c.GetString("uid"), req.Rating)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"meal_id": mealId, "rating": req.Rating})
		case errors.Is(err, services.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrMealNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while rating the meal"})
		}
	}
}

func (ctl *MealController) GetMeal() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		meal, err := ctl.ratings.Meal(ctx, c.Param("meal_id"))
		if errors.Is(err, services.ErrMealNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while fetching the meal"})
			return
		}
		c.JSON(http.StatusOK, meal)
	}
}
