package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/clinica/patients-api/util"
)

const bearerPrefix = "Bearer "

// AuthRequired guards patient endpoints. It extracts the bearer token from
// the Authorization header, verifies signature and expiry, and stores the
// token subject in the context. Requests failing any step are rejected
// before the handler runs.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg := GetConfig(c)
		if cfg == nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Configuration not available", Err: fmt.Errorf("config is nil")})
			c.Abort()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Code: util.CodeUnauthenticated,
				Msg:  "Missing or malformed bearer token",
				Err:  fmt.Errorf("authorization header missing or malformed"),
			})
			c.Abort()
			return
		}

		subject, err := util.VerifyToken([]byte(cfg.JWTSecret), strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			code, msg := util.CodeInvalidToken, "Invalid token"
			if errors.Is(err, util.ErrExpiredToken) {
				code, msg = util.CodeTokenExpired, "Token expired"
			}
			util.CallUserNotAuthorized(c, util.APIErrorParams{Code: code, Msg: msg, Err: err})
			c.Abort()
			return
		}

		c.Set(usernameContextKey, subject)
		c.Next()
	}
}
