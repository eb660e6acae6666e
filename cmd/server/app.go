package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/iyunix/go-workshopchat/internal/config"
	"github.com/iyunix/go-workshopchat/internal/handlers"
	"github.com/iyunix/go-workshopchat/internal/middleware"
	"github.com/iyunix/go-workshopchat/internal/ratelimit"
	chatrepo "github.com/iyunix/go-workshopchat/internal/repository/chat"
	"github.com/iyunix/go-workshopchat/internal/repository/directory"
	msgrepo "github.com/iyunix/go-workshopchat/internal/repository/message"
	"github.com/iyunix/go-workshopchat/internal/services"
	chatservice "github.com/iyunix/go-workshopchat/internal/services/chat"
)

type app struct {
	Router  *mux.Router
	limiter *ratelimit.MemoryRateLimiter
}

func (a *app) Close() {
	a.limiter.Close()
}

// newApp wires repositories, chat components and HTTP routes.
func newApp(cfg *config.Config, db *gorm.DB, logger services.Logger) (*app, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// --- Repositories ---
	dirRepo := directory.NewDirectoryRepository(db, logger)
	roomRepo := chatrepo.NewChatRoomRepository(db, logger)
	messageRepo := msgrepo.NewMessageRepository(db, logger)

	// --- Services ---
	chatCfg := chatservice.DefaultConfig()
	chatCfg.DefaultPageSize = cfg.DefaultPageSize
	chatCfg.MaxPageSize = cfg.MaxPageSize
	if err := chatCfg.Validate(); err != nil {
		return nil, chatservice.NewValidationError("config", err.Error())
	}

	chatService, err := services.NewChatService(
		chatservice.NewOwnershipGate(dirRepo, dirRepo, logger),
		chatservice.NewRoomRegistry(roomRepo, chatCfg, logger),
		chatservice.NewMessageStore(messageRepo, chatCfg, logger),
		chatservice.NewReadStateTracker(messageRepo, chatCfg, logger),
		logger,
	)
	if err != nil {
		return nil, err
	}

	// --- Handlers ---
	chatHandler := handlers.NewChatHandler(chatService, logger)
	sendLimiter := ratelimit.NewMemoryRateLimiter(&ratelimit.Config{
		WindowSize:    cfg.SendRateWindow,
		MaxAttempts:   cfg.SendRateMax,
		CleanupPeriod: 5 * cfg.SendRateWindow,
	})

	// --- Router Setup ---
	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic(logger))
	r.Use(middleware.LoggingMiddleware(logger))

	r.HandleFunc("/health", handlers.Health(sqlDB)).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api/chat").Subrouter()
	api.Use(middleware.RequireAuth([]byte(cfg.JWTSecretKey), logger))
	chatHandler.Routes(api, middleware.RateLimitMiddleware(sendLimiter, "send_message", logger))

	return &app{Router: r, limiter: sendLimiter}, nil
}
