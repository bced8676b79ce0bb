package handlers

import (
	"net/http"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
	"backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

func busRepo() repositories.BusRepository {
	return repositories.BusRepository{DB: intconfig.DB}
}

// GET /api/buses
func GetBuses(c *gin.Context) {
	buses, err := busRepo().List()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, buses)
}

// GET /api/buses/:id
func GetBusByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	bus, err := busRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

// POST /api/buses
func CreateBus(c *gin.Context) {
	var input models.Bus
	if !BindJSONOrError(c, &input) {
		return
	}
	if input.BusNumber == "" {
		RespondDomainError(c, domain.ValidationError{Field: "busNumber", Msg: "required"})
		return
	}
	if input.DepotID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "depotId", Msg: "required"})
		return
	}
	if input.Layout.Family != models.LayoutSeater && input.Layout.Family != models.LayoutSleeper {
		RespondDomainError(c, domain.ValidationError{Field: "seatLayout.family", Msg: "must be seater or sleeper"})
		return
	}
	if input.Layout.Rows <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "seatLayout.rows", Msg: "must be positive"})
		return
	}
	if input.Status == "" {
		input.Status = models.BusIdle
	}

	id, err := busRepo().Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	input.ID = id
	c.JSON(http.StatusCreated, input)
}

type updateBusStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/buses/:id/status
// Manual status moves for the yard: idle, maintenance, retired. The assigned
// status is owned by trip commits and cannot be set by hand.
func UpdateBusStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateBusStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	switch req.Status {
	case models.BusIdle, models.BusMaintenance, models.BusRetired:
	default:
		RespondDomainError(c, domain.ValidationError{Field: "status", Msg: "must be idle, maintenance or retired"})
		return
	}
	if err := busRepo().UpdateStatus(id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	bus, err := busRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

// DELETE /api/buses/:id
func DeleteBus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := busRepo().Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus deleted"})
}
