// File: cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iyunix/go-workshopchat/internal/config"
	"github.com/iyunix/go-workshopchat/internal/database"
	"github.com/iyunix/go-workshopchat/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	logger := services.NewLogger("workshop-chat")

	db, err := database.Open(database.Options{
		Driver:  cfg.DBDriver,
		DSN:     cfg.DatabaseDSN,
		Verbose: strings.EqualFold(cfg.LogLevel, "debug"),
	})
	if err != nil {
		log.Fatalf("DB Error: %v", err)
	}

	// Outside production the directory tables are created locally so the API
	// can run without the services that own them.
	if err := database.Migrate(db, !cfg.IsProduction()); err != nil {
		log.Fatalf("DB Migration Error: %v", err)
	}

	app, err := newApp(cfg, db, logger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize chat API: %v", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.ServerPort, "env", cfg.Environment, "db_driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down server gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		return
	}
	logger.Info("server stopped")
}
