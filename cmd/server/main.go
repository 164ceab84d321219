// Package main is the entry point for the hoteldash API server.
// The dashboard holds no data of its own; every record lives in the data
// operations backend it talks to over HTTP.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hoteldash/internal/config"
	"hoteldash/internal/domain/crud"
	"hoteldash/internal/domain/session"
	"hoteldash/internal/domain/stats"
	"hoteldash/internal/infrastructure/dataops"
	v1 "hoteldash/internal/infrastructure/http/v1"
	"hoteldash/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.Infow("starting hoteldash server",
		"upstream", cfg.Upstream.BaseURL,
	)

	// --- Backend client ---
	backend := dataops.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	// --- Schema registry ---
	registry := setupSchemaRegistry()
	log.Info("schema registry initialized")

	// --- CRUD orchestrator with entity hooks ---
	orchestrator := crud.NewOrchestrator(registry, backend)
	crud.RegisterReservePricing(orchestrator.Hooks(), "reserve", backend)
	crud.RegisterRoomLayoutRules(orchestrator.Hooks(), "roomdescription")
	crud.RegisterStayDateOrder(orchestrator.Hooks(), "roomunavailable")

	// --- Sessions ---
	jwtConfig := session.DefaultJWTConfig(cfg.Auth.JWTSecret)
	jwtConfig.Issuer = cfg.Auth.JWTIssuer
	jwtConfig.TokenTTL = cfg.Auth.TokenTTL
	jwtService := session.NewJWTService(jwtConfig)
	sessionService := session.NewService(backend, jwtService)
	policy := session.NewPolicy()

	// --- Stats ---
	statsService := stats.NewService(backend, policy)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		JWTValidator:   jwtService,
		SessionService: sessionService,
		Policy:         policy,
		Registry:       registry,
		Orchestrator:   orchestrator,
		StatsService:   statsService,
		Backend:        backend,
	})

	// --- HTTP server ---
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
