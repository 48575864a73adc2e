package router

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger registra método, rota, status e latência de cada request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("[%d] %s %s %s", c.Writer.Status(), c.Request.Method, c.Request.URL.Path, time.Since(start))
	}
}
