package handlers

import (
	"net/http"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

func routeRepo() repositories.RouteRepository {
	return repositories.RouteRepository{DB: intconfig.DB}
}

// GET /api/routes
func GetRoutes(c *gin.Context) {
	routes, err := routeRepo().List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GET /api/routes/:id
func GetRouteByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	route, err := routeRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// POST /api/routes
func CreateRoute(c *gin.Context) {
	var input models.Route
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.RouteNumber == "" || input.RouteName == "" {
		RespondDomainError(c, domain.ValidationError{Field: "routeNumber", Msg: "route number and name are required"})
		return
	}
	if input.TotalDistanceKm <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "totalDistanceKm", Msg: "must be positive"})
		return
	}

	id, err := routeRepo().Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

type updateRouteFareRequest struct {
	FarePerKm float64 `json:"farePerKm" binding:"required"`
}

// PUT /api/routes/:id/fare
// Route geography is immutable once created; only the fare field is
// revisable.
func UpdateRouteFare(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateRouteFareRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.FarePerKm <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "farePerKm", Msg: "must be positive"})
		return
	}
	if err := routeRepo().UpdateFare(id, req.FarePerKm); err != nil {
		RespondDomainError(c, err)
		return
	}
	route, err := routeRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

// DELETE /api/routes/:id
func DeleteRoute(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := routeRepo().Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deleted"})
}
