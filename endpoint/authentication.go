package endpoint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/clinica/patients-api/model"
	"github.com/clinica/patients-api/util"
)

const maxUsernameLength = 50

type RegisterRequest struct {
	Username string `form:"username" json:"username" example:"alice"`
	Password string `form:"password" json:"password" example:"password123"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username" example:"alice"`
	Password string `form:"password" json:"password" example:"password123"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int    `json:"expires_in" example:"3600"`
}

func validateCredentials(username, password string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("username cannot exceed %d characters", maxUsernameLength)
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}

// Register godoc
// @Summary      Register a new user
// @Description  Create a user account with a unique username
// @Tags         Authentication
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        request body RegisterRequest true "Registration credentials"
// @Success      201 {object} util.APIResponse{data=model.User} "User registered"
// @Failure      409 {object} util.APIResponse "Username already exists"
// @Failure      422 {object} util.APIResponse "Invalid credentials payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /auth/register [post]
func Register(c *gin.Context) {
	var req RegisterRequest
	if !bindOrRespond(c, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := validateCredentials(req.Username, req.Password); err != nil {
		util.CallValidationError(c, util.APIErrorParams{Msg: err.Error(), Err: err})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var existing model.User
	err := db.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		util.CallConflict(c, util.APIErrorParams{Msg: "Username already exists", Err: fmt.Errorf("username %q already exists", req.Username)})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return
	}

	user := model.User{Username: req.Username, Password: hashed}
	if err := db.Create(&user).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create user", Err: err})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{Msg: "User registered", Data: user})
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with username and password and receive a bearer token
// @Tags         Authentication
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} util.APIResponse{data=LoginResponse} "Login successful"
// @Failure      401 {object} util.APIResponse "Invalid username or password"
// @Failure      422 {object} util.APIResponse "Invalid credentials payload"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /auth/login [post]
func Login(c *gin.Context) {
	var req LoginRequest
	if !bindOrRespond(c, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if req.Username == "" || req.Password == "" {
		util.CallValidationError(c, util.APIErrorParams{
			Msg: "Username and password are required",
			Err: fmt.Errorf("username or password is empty"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}
	cfg, ok := getConfigOrRespond(c)
	if !ok {
		return
	}

	var user model.User
	err := db.Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondInvalidCredentials(c)
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	if !util.VerifyPassword(req.Password, user.Password) {
		respondInvalidCredentials(c)
		return
	}

	ttl := cfg.TokenTTL()
	token, err := util.IssueToken([]byte(cfg.JWTSecret), user.Username, ttl)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Login successful",
		Data: LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			ExpiresIn:   int(ttl.Seconds()),
		},
	})
}

// Unknown usernames and wrong passwords get the same response.
func respondInvalidCredentials(c *gin.Context) {
	util.CallUserNotAuthorized(c, util.APIErrorParams{
		Code: util.CodeUnauthorized,
		Msg:  "Invalid username or password",
		Err:  fmt.Errorf("invalid username or password"),
	})
}
