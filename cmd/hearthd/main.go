/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the Hearth decision engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load TOML config (flags override)
  2. Initialize SQLite store
  3. Create engine and API handler
  4. Start rollover scheduler
  5. Start server with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the scheduler and close the database
  4. Exit

EXAMPLES:
  # Run with defaults (hearth.db, port 8080)
  hearthd serve

  # Run with a config file and in-memory database
  hearthd serve --config ./hearth.toml --db ":memory:"

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration file format
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hearthplan/hearth/api"
	"github.com/hearthplan/hearth/config"
	"github.com/hearthplan/hearth/engine"
	"github.com/hearthplan/hearth/store/sqlite"
)

var (
	flagConfig string
	flagPort   int
	flagDB     string
)

func main() {
	root := &cobra.Command{
		Use:   "hearthd",
		Short: "Household decision tracking and discretionary budget server",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	serve.Flags().StringVar(&flagConfig, "config", "", "path to TOML config file")
	serve.Flags().IntVar(&flagPort, "port", 0, "HTTP server port (overrides config)")
	serve.Flags().StringVar(&flagDB, "db", "", "SQLite database path (overrides config)")

	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = flagPort
	}
	if cmd.Flags().Changed("db") {
		cfg.Database.Path = flagDB
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	eng := engine.New(store)
	handler := api.NewHandler(eng)
	router := api.NewRouter(handler, cfg.Server.AllowedOrigins)

	scheduler := api.NewRolloverScheduler(eng)
	scheduler.Enabled = cfg.Scheduler.Enabled
	scheduler.CheckInterval = time.Duration(cfg.Scheduler.CheckIntervalMinutes) * time.Minute
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.Server.Port)
		log.Printf("API available at http://localhost:%d/api", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
