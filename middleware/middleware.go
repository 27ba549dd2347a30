package middleware

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/clinica/patients-api/config"
)

// CORSMiddleware configures cross-origin access for the configured origins.
func CORSMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			// Wildcard origins cannot be combined with credentials.
			corsCfg.AllowAllOrigins = true
			corsCfg.AllowCredentials = false
			corsCfg.AllowOrigins = nil
			break
		}
		corsCfg.AllowOrigins = append(corsCfg.AllowOrigins, origin)
	}
	return cors.New(corsCfg)
}

// RequestLogger logs each request with its status code and duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Printf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
