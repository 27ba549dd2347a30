package endpoint

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinica/patients-api/config"
	"github.com/clinica/patients-api/middleware"
	"github.com/clinica/patients-api/util"
)

// bindOrRespond binds the request body (form- or JSON-encoded, by content
// type) into dst, responding with a validation error on failure.
func bindOrRespond(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBind(dst); err != nil {
		util.CallValidationError(c, util.APIErrorParams{Msg: "Invalid request payload", Err: err})
		return false
	}
	return true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

func getConfigOrRespond(c *gin.Context) (*config.Config, bool) {
	cfg := middleware.GetConfig(c)
	if cfg == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Configuration not available", Err: fmt.Errorf("config is nil")})
		return nil, false
	}
	return cfg, true
}
