package handlers

import (
	"net/http"
	"strconv"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

func driverRepo() repositories.DriverRepository {
	return repositories.DriverRepository{DB: intconfig.DB}
}

// depotQuery reads the mandatory depotId query parameter for crew listings.
func depotQuery(c *gin.Context) (int64, bool) {
	depotID, err := strconv.ParseInt(c.Query("depotId"), 10, 64)
	if err != nil || depotID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "depotId", Msg: "query parameter required"})
		return 0, false
	}
	return depotID, true
}

// GET /api/drivers?depotId=
func GetDrivers(c *gin.Context) {
	depotID, ok := depotQuery(c)
	if !ok {
		return
	}
	drivers, err := driverRepo().ListActiveByDepot(depotID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, drivers)
}

// GET /api/drivers/:id
func GetDriverByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	driver, err := driverRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}

// POST /api/drivers
func CreateDriver(c *gin.Context) {
	var input models.Driver
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

	id, err := driverRepo().Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// PUT /api/drivers/:id/active
func SetDriverActive(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req setActiveRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := driverRepo().SetActive(id, *req.Active); err != nil {
		RespondDomainError(c, err)
		return
	}
	driver, err := driverRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, driver)
}
