package routes

import (
	"go-meal-delivery/controllers"

	"github.com/gin-gonic/gin"
)

func DeliveryRoutes(incomingRoutes *gin.Engine, ctl *controllers.DeliveryController) {
	incomingRoutes.GET("/delivery/orders", ctl.GetDeliveryOrders())
	incomingRoutes.GET("/delivery/history", ctl.GetDeliveryHistory())
}
