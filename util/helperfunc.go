package util

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Stable machine-readable error codes returned alongside every failure.
const (
	CodeConflict        = "conflict"
	CodeUnauthorized    = "unauthorized"
	CodeUnauthenticated = "unauthenticated"
	CodeInvalidToken    = "invalid_token"
	CodeTokenExpired    = "token_expired"
	CodeNotFound        = "not_found"
	CodeValidation      = "validation_error"
	CodeInternal        = "internal_error"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

type APIErrorParams struct {
	Code string
	Msg  string
	Err  error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

func errorResponse(code string, params APIErrorParams) APIResponse {
	if params.Code != "" {
		code = params.Code
	}
	return APIResponse{
		Success: false,
		Code:    code,
		Error:   params.Err.Error(),
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	}
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusNotFound, errorResponse(CodeNotFound, params))
}

// CallValidationError is for return API response for malformed or out-of-range input
func CallValidationError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusUnprocessableEntity, errorResponse(CodeValidation, params))
}

// CallConflict is for return API response when a uniqueness constraint is violated
func CallConflict(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusConflict, errorResponse(CodeConflict, params))
}

// CallUserNotAuthorized is for return API response with status code 401, you need to specify msg, and err as function parameter
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusUnauthorized, errorResponse(CodeUnauthorized, params))
}

// CallServerError is for return API response server error. The underlying
// error is logged and never included in the response body.
func CallServerError(c *gin.Context, params APIErrorParams) {
	log.Printf("server error: %s: %v", params.Msg, params.Err)
	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Code:    CodeInternal,
		Error:   "internal error",
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	})
}

// CallSuccessOK is for return API response with status code 200, you need to specify msg, and data as function parameter
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Error:   "",
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// CallSuccessCreated is for return API response with status code 201 after a resource is created
func CallSuccessCreated(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Error:   "",
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// NormalizeName normalizes a name by trimming leading/trailing whitespace
// and collapsing multiple internal spaces into single spaces.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	return strings.Join(strings.Fields(name), " ")
}
