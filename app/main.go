package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/johan-windahl/procurdo/app/api"
	"github.com/johan-windahl/procurdo/app/catalog"
	"github.com/johan-windahl/procurdo/app/cfg"
	"github.com/johan-windahl/procurdo/app/ted"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	log.Printf("Starting Procurdo Search server (version %s)...", appCfg.Version)

	// Load CPV catalogue
	log.Printf("Loading CPV catalogue from %s...", appCfg.CatalogDir)
	cpvCatalog := catalog.NewCatalog(appCfg.CatalogDir)
	if err := cpvCatalog.Run(); err != nil {
		log.Fatalf("Failed to load CPV catalogue: %v", err)
	}
	log.Printf("Loaded %d CPV catalogue entries", cpvCatalog.Count())

	// Initialize core components
	queryBuilder := ted.NewQueryBuilder(appCfg.HomeCountry, appCfg.LookbackDays)
	tedClient := ted.NewClient(
		appCfg.TEDAPIURL, appCfg.UserAgent, appCfg.PageSize,
		time.Duration(appCfg.RequestTimeout)*time.Second, queryBuilder)

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(tedClient, cpvCatalog)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	// Create HTTP server with timeouts
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Search:        http://localhost:%s/search", appCfg.Port)
		log.Printf("  Form metadata: http://localhost:%s/meta", appCfg.Port)
		log.Printf("  CPV catalogue: http://localhost:%s/cpv", appCfg.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appCfg.Port)

		if appCfg.APIAccessKey != "" {
			log.Printf("  Reload:        http://localhost:%s/api/catalog/reload (POST, requires API key)", appCfg.Port)
		} else {
			log.Printf("  Admin endpoints: DISABLED (API_ACCESS_KEY not set)")
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Procurdo Search server started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("Procurdo Search server shutdown complete")
}
