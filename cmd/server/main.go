// Package main is the entry point for the dragonj scheduling server.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/myturn82/dragonj/internal/api"
	"github.com/myturn82/dragonj/internal/auth"
	"github.com/myturn82/dragonj/internal/config"
	"github.com/myturn82/dragonj/internal/holiday"
	"github.com/myturn82/dragonj/internal/storage"
	"github.com/myturn82/dragonj/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config.yaml", "Path to YAML config file")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	// Optional .env for local development; absence is fine.
	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(cfg.Listen); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.Printf("Starting dragonj scheduling server (version: %s)...", version)

	// Initialize database
	dbPath := cfg.DataDir + "/dragonj.db"
	db, err := storage.NewDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := storage.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations complete")

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize repositories and services
	userRepo := storage.NewUserRepository(db)
	scheduleRepo := storage.NewScheduleRepository(db)
	authSvc := auth.NewService(userRepo, cfg.TokenSecret, cfg.SessionTTL)

	holidayClient := holiday.NewClient(cfg.HolidayFeedURL, cfg.MarketFeedURL)
	holidayCache := holiday.NewCache(holidayClient, cfg.HolidayCacheYears)

	// Background jobs
	prefetcher := holiday.NewPrefetcher(holidayCache, cfg.HolidayRegion, hub)
	prefetcher.Start()

	sessionCleaner := auth.NewSessionCleaner(userRepo)
	sessionCleaner.Start()

	// Initialize HTTP router
	router := api.NewRouter(cfg, db, hub, authSvc, scheduleRepo, holidayCache)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on %s", cfg.Listen)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop background jobs
	prefetcher.Stop()
	sessionCleaner.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
