package handlers

import (
	"errors"
	"net/http"

	"backend/internal/domain"
	"backend/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. The code field
// is the machine-readable discriminator clients switch on.
func RespondDomainError(c *gin.Context, err error) {
	var (
		unavailable domain.ResourceUnavailableError
		seat        domain.SeatUnavailableError
		transition  domain.InvalidTransitionError
		policy      domain.PolicyMissingError
	)
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.As(err, &seat):
		respondError(c, http.StatusConflict, "seat_unavailable", err.Error(), gin.H{
			"seat": seat.Seat,
		})
	case errors.As(err, &unavailable):
		respondError(c, http.StatusConflict, "resource_unavailable", err.Error(), gin.H{
			"stage":      unavailable.Stage,
			"candidates": unavailable.Candidates,
		})
	case errors.As(err, &transition):
		respondError(c, http.StatusConflict, "invalid_transition", err.Error(), gin.H{
			"entity": transition.Entity,
			"from":   transition.From,
			"to":     transition.To,
		})
	case errors.As(err, &policy):
		respondError(c, http.StatusUnprocessableEntity, "policy_missing", err.Error(), gin.H{
			"busType":   policy.BusType,
			"routeType": policy.RouteType,
		})
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
