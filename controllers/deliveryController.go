package controllers

import (
	"context"
	"net/http"
	"time"

	"go-meal-delivery/services"

	"github.com/gin-gonic/gin"
)

type DeliveryController struct {
	delivery *services.DeliveryService
}

func NewDeliveryController(delivery *services.DeliveryService) *DeliveryController {
	return &DeliveryController{delivery: delivery}
}

// GetDeliveryOrders returns the delivery dashboard: orders up for
// grabs in the caller's region plus the caller's active deliveries.
func (ctl *DeliveryController) GetDeliveryOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		region := c.Query("region")
		if region == "" {
			region = c.GetString("region")
		}
		if region == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "region is required"})
			return
		}

		available, err := ctl.delivery.ListDeliverable(ctx, region)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing deliverable orders"})
			return
		}
		mine, err := ctl.delivery.ActiveDeliveries(ctx, c.GetString("uid"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing deliveries"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"available_orders": available,
			"my_deliveries":    mine,
		})
	}
}

// GetDeliveryHistory lists the caller's delivered orders (payout view).
func (ctl *DeliveryController) GetDeliveryHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		orders, err := ctl.delivery.DeliveredHistory(ctx, c.GetString("uid"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing delivery history"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
