package handlers

import (
	"net/http"
	"strconv"

	intconfig "backend/internal/config"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var env intconfig.Env

// Init wires process configuration into the handler package. Called once
// from the router before any request is served.
func Init(e intconfig.Env) {
	env = e
	jwtSecret = []byte(e.JWTSecret)
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error(), nil)
		return false
	}
	return true
}

// pathID parses the :id path parameter, responding with 400 on garbage.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id", nil)
		return 0, false
	}
	return id, true
}
