package router

import (
	"net/http"

	"github.com/Brighttier/Chatbot-Peptides-sub001/controllers"
	"github.com/Brighttier/Chatbot-Peptides-sub001/models"

	"github.com/gin-gonic/gin"
)

// Authorizer blocks access to protected routes when user is not active.
func Authorizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}

		if user.Status == models.USER_STATUS_PENDING {
			controllers.RespondError(c, "account confirmation required", http.StatusForbidden)
			c.Abort()
			return
		}
		if user.Status == models.USER_STATUS_BLOCKED {
			controllers.RespondError(c, "access denied", http.StatusForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
