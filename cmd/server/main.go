package main

import (
	"context"
	"log"
	"net/http"

	_ "reviewboard/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"reviewboard/internal/auth"
	"reviewboard/internal/config"
	"reviewboard/internal/handler"
	"reviewboard/internal/repository"
	"reviewboard/internal/router"
	"reviewboard/internal/service"
	"reviewboard/internal/store"
)

// @title Review Board API
// @version 2.0
// @description Customer review service backed by spreadsheet tables, with admin authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token from /admin/login.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	st, err := store.New(cfg.DataDir)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}

	// Initialize repositories and seed first-run state
	reviewRepo := repository.NewReviewRepository(st)
	adminRepo := repository.NewAdminRepository(st)

	if err := reviewRepo.Init(ctx); err != nil {
		log.Fatalf("init reviews table: %v", err)
	}
	seeded, err := adminRepo.EnsureDefault(ctx, cfg.AdminUsername, service.HashPassword(cfg.AdminPassword))
	if err != nil {
		log.Fatalf("init admins table: %v", err)
	}
	if seeded {
		log.Printf("default admin %q created, change the default password immediately", cfg.AdminUsername)
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	reviewService := service.NewReviewService(reviewRepo)
	adminService := service.NewAdminService(adminRepo)

	// Initialize handlers
	reviewHandler := handler.NewReviewHandler(reviewService)
	adminHandler := handler.NewAdminHandler(adminService, jwtService)
	systemHandler := handler.NewSystemHandler(st)
	backupHandler := handler.NewBackupHandler(st)

	e := echo.New()
	router.Register(e, jwtService, reviewHandler, adminHandler, systemHandler, backupHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
