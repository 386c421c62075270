package routes

import (
	"go-meal-delivery/controllers"

	"github.com/gin-gonic/gin"
)

func NotificationRoutes(incomingRoutes *gin.Engine, ctl *controllers.NotificationController) {
	incomingRoutes.GET("/notifications", ctl.GetNotifications())
	incomingRoutes.PATCH("/notifications/:notification_id/read", ctl.MarkNotificationRead())
}
