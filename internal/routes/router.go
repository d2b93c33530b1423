package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/irwhub/employee-contract-app/internal/handlers"
	"github.com/irwhub/employee-contract-app/internal/middleware"
)

// Deps carries the constructed handlers into route registration.
type Deps struct {
	Auth      *middleware.Auth
	AuthH     *handlers.AuthHandler
	Contracts *handlers.ContractHandler
	Sync      *handlers.SyncHandler
}

// SetupRoutes mounts CORS, the public routes and the authenticated API.
func SetupRoutes(r *gin.Engine, d Deps) {
	// All origins, bearer header only, no cookies.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
	}))

	r.GET("/health", handlers.HealthHandler)
	r.POST("/auth/login", d.AuthH.Login)
	r.POST("/auth/refresh", d.AuthH.Refresh)

	authRequired := r.Group("/")
	authRequired.Use(d.Auth.Handler())
	{
		RegisterAPIRoutes(authRequired, d)
	}
}
