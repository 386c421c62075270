package routes

import (
	"go-meal-delivery/controllers"

	"github.com/gin-gonic/gin"
)

// UserRoutes are registered before the authentication middleware; the
// websocket stream lives here too so clients can connect with just
// their uid.
func UserRoutes(incomingRoutes *gin.Engine, ctl *controllers.UserController, hub *controllers.WsHub) {
	incomingRoutes.POST("/users/signup", ctl.SignUp())
	incomingRoutes.POST("/users/login", ctl.Login())
	incomingRoutes.GET("/ws", hub.HandleWebSocket())
}

// ProtectedUserRoutes require a valid token.
func ProtectedUserRoutes(incomingRoutes *gin.Engine, ctl *controllers.UserController) {
	incomingRoutes.GET("/users/:user_id", ctl.GetUser())
	incomingRoutes.PATCH("/users/:user_id/approve", ctl.ApproveUser())
}
