package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vistoria-service/config"
	"vistoria-service/database"
	"vistoria-service/handlers"
	"vistoria-service/middleware"
	"vistoria-service/models"
	"vistoria-service/renderer"

	"github.com/apex/log"
	"github.com/apex/log/handlers/text"
	"github.com/gin-gonic/gin"
)

func main() {
	log.SetHandler(text.New(os.Stderr))

	// Load configuration
	cfg := config.Load()

	if cfg.LogLevel == "debug" {
		log.SetLevel(log.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set, tokens cannot be validated")
	}

	db, err := database.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	rend := renderer.New(db, cfg)
	h := handlers.NewHandlers(db, rend, cfg)

	router := setupRouter(h, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Infof("Starting HTTP server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxRequestSize

	router.Use(middleware.CORSMiddleware())

	// Root health check
	router.GET("/health", h.HealthCheck)

	// Static assets referenced by the rendered report (logo)
	router.Static("/img", "./public/img")

	api := router.Group("/api", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		viewers := api.Group("/", middleware.RequireRole(
			models.RoleVistoriador, models.RoleGestor, models.RoleVisualizador))
		{
			viewers.GET("/rotas/:id", h.GetRoute)
			viewers.GET("/rotas/:id/pdf", h.GetReportPDF)
		}

		inspectors := api.Group("/", middleware.RequireRole(models.RoleVistoriador))
		{
			inspectors.PATCH("/rotas/:id/iniciar", h.StartRoute)
			inspectors.PUT("/rotas/:id", h.FinalizeRoute)
		}
	}

	return router
}
