package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pep299/headline-search/internal/config"
	"github.com/pep299/headline-search/internal/handlers"
)

var (
	Version   string = "dev"
	Commit    string = "unknown"
	BuildTime string = "unknown"
)

func main() {
	var (
		showHelp    = flag.Bool("help", false, "Show help message")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showHelp {
		fmt.Printf("Headline Search Server\n\n")
		fmt.Printf("Usage: %s [options] [port]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nEnvironment Variables:\n")
		fmt.Printf("  API_KEY                   NewsAPI key (required)\n")
		fmt.Printf("  API_PORT                  Server port when no port argument is given (default: 3000)\n")
		fmt.Printf("  HOST                      Listen host (default: all interfaces)\n")
		fmt.Printf("  STATIC_DIR                Static asset directory (default: public)\n")
		fmt.Printf("  UPSTREAM_TIMEOUT_SECONDS  NewsAPI request timeout, 0 disables (default: 30)\n")
		fmt.Printf("  CACHE_ENABLED             Cache search results (default: false)\n")
		fmt.Printf("  CACHE_TYPE                Cache type: memory or cloud-storage (default: memory)\n")
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Headline Search Server\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Build Time: %s\n", BuildTime)
		os.Exit(0)
	}

	// Load configuration; a missing API key stops us before any listener is bound
	cfg, err := config.Load(flag.Args())
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := handlers.NewServer(ctx, cfg, Version)
	if err != nil {
		log.Fatalf("❌ Failed to create server: %v", err)
	}
	defer server.Close()

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      server.SetupRoutes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	c := cron.New()
	if server.CacheEnabled() {
		_, err := c.AddFunc(cfg.CacheCleanupSchedule, func() {
			if err := server.PurgeExpiredCache(ctx); err != nil {
				log.Printf("❌ Cache cleanup failed: %v", err)
			}
		})
		if err != nil {
			log.Fatalf("❌ Invalid CACHE_CLEANUP_SCHEDULE %q: %v", cfg.CacheCleanupSchedule, err)
		}
		log.Printf("📅 Scheduled %s cache cleanup with cron: %s", cfg.CacheType, cfg.CacheCleanupSchedule)
	}
	c.Start()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("🚀 Server started on port %d at %s", cfg.Port, time.Now().Format(time.RFC1123))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-sigChan
	log.Println("🛑 Shutting down server...")

	cancel()
	<-c.Stop().Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("✅ Server stopped")
}
