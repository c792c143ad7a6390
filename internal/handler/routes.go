package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/inventory_console/internal/middleware"
)

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Product   *ProductHandler
	Category  *CategoryHandler
	Supplier  *SupplierHandler
	Order     *OrderHandler
	SSE       *SSEHandler
}

// SetupRoutes registers all routes. router must already run the WebSession
// and CSRF middleware.
func SetupRoutes(router *gin.Engine, handlers *Handlers, guard *middleware.RouteGuard) {
	router.GET("/healthz", handlers.Health.GetHealth)
	router.NoRoute(NotFound)

	guest := router.Group("/")
	guest.Use(guard.GuestOnly())
	{
		guest.GET("/login", handlers.Auth.ShowLogin)
		guest.POST("/login", handlers.Auth.Login)
		guest.GET("/register", handlers.Auth.ShowRegister)
		guest.POST("/register", handlers.Auth.Register)
	}

	console := router.Group("/")
	console.Use(guard.Protect())
	{
		console.GET("/", handlers.Dashboard.Show)
		console.POST("/logout", handlers.Auth.Logout)
		console.GET("/events", handlers.SSE.Stream)

		handlers.Product.MountRoutes(console)
		handlers.Category.MountRoutes(console)
		handlers.Supplier.MountRoutes(console)
		handlers.Order.MountRoutes(console)
	}
}
