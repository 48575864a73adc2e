package router

import (
	"net/http"

	"avalia/controllers"

	"github.com/gin-gonic/gin"
)

// Revisor blocks access when user is not a reviewer.
func Revisor() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := controllers.GetUserLogged(c)
		if !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if !user.IsReviewer() {
			controllers.RespondError(c, "acesso restrito a revisores", http.StatusForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
