package handlers

import (
	"net/http"
	"strconv"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/http/middleware"
	"backend/internal/repositories"
	"backend/internal/services"

	"github.com/gin-gonic/gin"
)

func tripRepo() repositories.TripRepository {
	return repositories.TripRepository{DB: intconfig.DB}
}

func assignmentService(c *gin.Context) services.AssignmentService {
	rid := middleware.GetRequestID(c)
	return services.AssignmentService{
		DB:         intconfig.DB,
		Routes:     routeRepo(),
		Buses:      busRepo(),
		Drivers:    driverRepo(),
		Conductors: conductorRepo(),
		Trips:      tripRepo(),
		Fares: services.FareService{
			PolicyRepo: policyRepo(),
			RequestID:  rid,
		},
		RequestID: rid,
	}
}

// POST /api/trips
// Runs the full assignment pipeline: route, bus, driver, conductor, fare.
// Either every resource binds and the trip commits, or nothing persists.
func CreateTrip(c *gin.Context) {
	var req services.CreateTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	result, err := assignmentService(c).CreateTrip(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GET /api/trips?depotId=&serviceDate=
func GetTrips(c *gin.Context) {
	depotID, err := strconv.ParseInt(c.Query("depotId"), 10, 64)
	if err != nil || depotID <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: "depotId", Msg: "query parameter required"})
		return
	}
	serviceDate := c.Query("serviceDate")
	if serviceDate == "" {
		RespondDomainError(c, domain.ValidationError{Field: "serviceDate", Msg: "query parameter required"})
		return
	}

	trips, err := tripRepo().ListByDepotDate(depotID, serviceDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trips)
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	trip, err := tripRepo().GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// GET /api/trips/:id/seats
func GetTripSeats(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	svc := services.SeatService{
		Trips:    tripRepo(),
		Buses:    busRepo(),
		Bookings: bookingRepo(),
	}
	seats, err := svc.AvailableSeats(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tripId":         id,
		"availableSeats": seats,
		"availableCount": len(seats),
	})
}

type updateTripStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/trips/:id/status
func UpdateTripStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req updateTripStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	trip, err := assignmentService(c).UpdateTripStatus(id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}
