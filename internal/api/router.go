package api

import (
	"net/http"

	"travel-agency/internal/api/middleware"
	"travel-agency/internal/modules/auth"
	"travel-agency/internal/modules/customers"
	"travel-agency/internal/modules/locations"

	"github.com/labstack/echo/v4"
)

// SetupRoutes registers all API endpoints. Everything under /api/TravelAgency
// requires a valid bearer token; mutations additionally pass the ADMIN gate.
func SetupRoutes(
	e *echo.Echo,
	authHandler *auth.Handler,
	customerHandler *customers.Handler,
	locationHandler *locations.Handler,
	roleLoader middleware.RoleLoader,
	jwtSecret string,
) {
	authMiddleware := middleware.JWTAuth(jwtSecret)
	adminRequired := middleware.AdminRequired(roleLoader)

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Travel Agency back-office API"})
	})

	// --- Public auth routes ---
	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/register", authHandler.Register, authMiddleware, adminRequired)
	}

	// --- Customer routes ---
	customerGroup := e.Group("/api/TravelAgency/Customer", authMiddleware)
	{
		customerGroup.POST("/save", customerHandler.Create, adminRequired)
		customerGroup.PUT("/:id", customerHandler.Update, adminRequired)
		customerGroup.DELETE("/:id", customerHandler.Delete, adminRequired)
		customerGroup.GET("/customers", customerHandler.List)
		customerGroup.GET("/:id", customerHandler.GetByID)
	}

	// --- Location routes ---
	locationGroup := e.Group("/api/TravelAgency/Location", authMiddleware)
	{
		locationGroup.POST("/save", locationHandler.Create, adminRequired)
		locationGroup.PUT("/:id", locationHandler.Update, adminRequired)
		locationGroup.DELETE("/:id", locationHandler.Delete, adminRequired)
		locationGroup.GET("/locations", locationHandler.List)
		locationGroup.GET("/:id", locationHandler.GetByID)
	}
}
