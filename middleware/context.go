package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinica/patients-api/config"
)

const (
	dbContextKey       = "db"
	configContextKey   = "config"
	usernameContextKey = "username"
)

// DatabaseMiddleware injects the shared gorm handle into the request context.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbContextKey, db)
		c.Next()
	}
}

// GetDB returns the gorm handle stored by DatabaseMiddleware, or nil.
func GetDB(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(dbContextKey); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	return nil
}

// ConfigMiddleware injects the startup configuration into the request context.
func ConfigMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(configContextKey, cfg)
		c.Next()
	}
}

// GetConfig returns the configuration stored by ConfigMiddleware, or nil.
func GetConfig(c *gin.Context) *config.Config {
	if v, ok := c.Get(configContextKey); ok {
		if cfg, ok := v.(*config.Config); ok {
			return cfg
		}
	}
	return nil
}

// GetUsername returns the authenticated subject set by AuthRequired.
func GetUsername(c *gin.Context) (string, bool) {
	v, ok := c.Get(usernameContextKey)
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	return username, ok && username != ""
}
