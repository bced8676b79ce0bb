package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "backend/internal/config"
	h "backend/internal/http/handlers"
	"backend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Init(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	operator := middleware.RequireAuth([]byte(env.JWTSecret))
	operatorRole := middleware.RequireRole("admin", "operator")

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/system/routes", h.RouteIndex)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// directory: candidate pools the engine draws from
		routes := api.Group("/routes")
		routes.GET("", h.GetRoutes)
		routes.GET("/:id", h.GetRouteByID)
		routes.POST("", operator, operatorRole, h.CreateRoute)
		routes.PUT("/:id/fare", operator, operatorRole, h.UpdateRouteFare)
		routes.DELETE("/:id", operator, operatorRole, h.DeleteRoute)

		buses := api.Group("/buses")
		buses.GET("", h.GetBuses)
		buses.GET("/:id", h.GetBusByID)
		buses.POST("", operator, operatorRole, h.CreateBus)
		buses.PUT("/:id/status", operator, operatorRole, h.UpdateBusStatus)
		buses.DELETE("/:id", operator, operatorRole, h.DeleteBus)

		drivers := api.Group("/drivers")
		drivers.GET("", h.GetDrivers)
		drivers.GET("/:id", h.GetDriverByID)
		drivers.POST("", operator, operatorRole, h.CreateDriver)
		drivers.PUT("/:id/active", operator, operatorRole, h.SetDriverActive)

		conductors := api.Group("/conductors")
		conductors.GET("", h.GetConductors)
		conductors.GET("/:id", h.GetConductorByID)
		conductors.POST("", operator, operatorRole, h.CreateConductor)
		conductors.PUT("/:id/active", operator, operatorRole, h.SetConductorActive)

		policies := api.Group("/fare-policies")
		policies.GET("", h.GetFarePolicies)
		policies.GET("/:id", h.GetFarePolicyByID)
		policies.POST("", operator, operatorRole, h.CreateFarePolicy)
		policies.PUT("/:id/deactivate", operator, operatorRole, h.DeactivateFarePolicy)

		// engine
		trips := api.Group("/trips")
		trips.POST("", operator, operatorRole, h.CreateTrip)
		trips.GET("", h.GetTrips)
		trips.GET("/:id", h.GetTripByID)
		trips.GET("/:id/seats", h.GetTripSeats)
		trips.GET("/:id/bookings", operator, operatorRole, h.GetTripBookings)
		trips.PUT("/:id/status", operator, operatorRole, h.UpdateTripStatus)

		api.POST("/fare/quote", h.QuoteFare)

		bookings := api.Group("/bookings")
		bookings.POST("", h.CreateBooking)
		bookings.GET("/:id", h.GetBookingByID)
		bookings.POST("/:id/confirm", h.ConfirmBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.GET("/:id/e-ticket", h.GetBookingETicketPDF)
		bookings.GET("/:id/invoice", h.GetBookingInvoicePDF)
	}

	h.SetRouter(r)
	return r
}
