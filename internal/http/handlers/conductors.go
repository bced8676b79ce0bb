package handlers

import (
	"net/http"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

func conductorRepo() repositories.ConductorRepository {
	return repositories.ConductorRepository{DB: intconfig.DB}
}

// GET /api/conductors?depotId=
func GetConductors(c *gin.Context) {
	depotID, ok := depotQuery(c)
	if !ok {
		return
	}
	conductors, err := conductorRepo().ListActiveByDepot(depotID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, conductors)
}

// GET /api/conductors/:id
func GetConductorByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	conductor, err := conductorRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, conductor)
}

// POST /api/conductors
func CreateConductor(c *gin.Context) {
	var input models.Conductor
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.Name == "" {
		RespondDomainError(c, domain.ValidationError{Field: "name", Msg: "required"})
		return
	}
	if input.DepotID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "depotId", Msg: "required"})
		return
	}
	input.Active = true

	id, err := conductorRepo().Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

// PUT /api/conductors/:id/active
func SetConductorActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req setActiveRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := conductorRepo().SetActive(id, *req.Active); err != nil {
		RespondDomainError(c, err)
		return
	}
	conductor, err := conductorRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, conductor)
}
