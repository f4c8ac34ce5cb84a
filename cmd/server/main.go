package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dropgate/internal/app"
	"dropgate/internal/config"
	httpapp "dropgate/internal/http"
	"dropgate/internal/logger"
	"dropgate/internal/storage"
	"dropgate/internal/store"
	"dropgate/internal/worker"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Content Store
	content := storage.NewContentStore(cfg.ContentDir)

	// Initialize Services
	dropService := app.NewDropService(db, content, appLogger)
	vendorService := app.NewVendorService(db, appLogger)

	// Initialize Sweeper
	sweeper := worker.NewSweeper(dropService, cfg.SweepInterval, cfg.PurgeGrace, appLogger)
	sweeper.Start()
	defer sweeper.Stop()

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Serve stored content directly when no CDN fronts the service
	r.Handle("/content/*", http.StripPrefix("/content/", http.FileServer(http.Dir(cfg.ContentDir))))

	// Routes
	h := httpapp.NewHandler(dropService, vendorService, db, cfg, appLogger)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
