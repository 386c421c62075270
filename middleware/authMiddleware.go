package middleware

import (
	"net/http"

	"go-meal-delivery/helpers"

	"github.com/gin-gonic/gin"
)

// Authentication validates the caller's token and stashes the verified
// identity on the request context; handlers read uid/user_role/region
// from there and never look at the token themselves.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("token")
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization token provided"})
			c.Abort()
			return
		}
		claims, err := helpers.ValidateToken(clientToken)
		if err != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err})
			c.Abort()
			return
		}
		c.Set("email", claims.Email)
		c.Set("name", claims.Name)
		c.Set("uid", claims.Uid)
		c.Set("user_role", claims.User_role)
		c.Set("region", claims.Region)
		c.Next()
	}
}
