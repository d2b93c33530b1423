package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/irwhub/employee-contract-app/config"
	"github.com/irwhub/employee-contract-app/internal/auth"
	"github.com/irwhub/employee-contract-app/internal/docsync"
	"github.com/irwhub/employee-contract-app/internal/handlers"
	"github.com/irwhub/employee-contract-app/internal/identity"
	"github.com/irwhub/employee-contract-app/internal/middleware"
	"github.com/irwhub/employee-contract-app/internal/routes"
	"github.com/irwhub/employee-contract-app/models"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(&models.Employee{}, &models.Contract{}); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	rdb := config.ConnectRedis(cfg)

	idp := identity.NewClient(cfg.Identity)
	authService := auth.NewService(db, idp, cfg)
	syncer := docsync.NewSyncer(db, cfg.Google)

	r := gin.Default()
	routes.SetupRoutes(r, routes.Deps{
		Auth:      middleware.NewAuth(db, rdb, idp, cfg),
		AuthH:     handlers.NewAuthHandler(authService, idp),
		Contracts: handlers.NewContractHandler(db),
		Sync:      handlers.NewSyncHandler(syncer),
	})

	slog.Info("Server starting", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
