package handlers

import (
	"net/http"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

type fareQuoteRequest struct {
	BusType    string               `json:"busType" binding:"required"`
	RouteType  string               `json:"routeType" binding:"required"`
	DistanceKm float64              `json:"distanceKm" binding:"required"`
	Context    services.FareContext `json:"context"`
}

// POST /api/fare/quote
// Dry-run fare resolution against the active policy, no side effects.
func QuoteFare(c *gin.Context) {
	var req fareQuoteRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.DistanceKm <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "distanceKm", Msg: "must be positive"})
		return
	}

	svc := services.FareService{
		PolicyRepo: repositories.FarePolicyRepository{DB: intconfig.DB},
		RequestID:  middleware.GetRequestID(c),
	}
	result, err := svc.ResolveFare(req.BusType, req.RouteType, req.DistanceKm, req.Context)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
