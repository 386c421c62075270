package routes

import (
	"go-meal-delivery/controllers"

	"github.com/gin-gonic/gin"
)

func OrderRoutes(incomingRoutes *gin.Engine, ctl *controllers.OrderController) {
	incomingRoutes.POST("/orders", ctl.PlaceOrder())
	incomingRoutes.GET("/orders", ctl.GetOrders())
	incomingRoutes.GET("/orders/:order_id", ctl.GetOrder())
	incomingRoutes.PATCH("/orders/:order_id/status", ctl.UpdateOrderStatus())
}
