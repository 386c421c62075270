package controllers

import (
	"context"
	"net/http"
	"time"

	"go-meal-delivery/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	notifications *services.NotificationService
}

func NewNotificationController(notifications *services.NotificationService) *NotificationController {
	return &NotificationController{notifications: notifications}
}

// GetNotifications lists the caller's unread notifications, newest first.
func (ctl *NotificationController) GetNotifications() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		notifications, err := ctl.notifications.ListUnread(ctx, c.GetString("uid"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while listing notifications"})
			return
		}
		c.JSON(http.StatusOK, notifications)
	}
}

func (ctl *NotificationController) MarkNotificationRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
		defer cancel()

		notificationId := c.Param("notification_id")
		if err := ctl.notifications.MarkRead(ctx, notificationId); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "error occurred while marking notification read"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"notification_id": notificationId})
	}
}
