package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadflow_backend/internal/crm"
	"leadflow_backend/internal/enrichment"
	"leadflow_backend/internal/events"
	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/http/router"
	"leadflow_backend/internal/leads"
	"leadflow_backend/internal/messaging"
	"leadflow_backend/internal/quoting"
	"leadflow_backend/internal/store"
	"leadflow_backend/internal/tasking"
	"leadflow_backend/internal/ticketing"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	leadStore, storeKind := initStore(ctx, cfg, log)

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Collaborator Adapters
	// ========================================================================

	enrichmentModule := enrichment.NewModule(cfg, log)
	crmAdapter := crm.New(cfg, log)
	notifier := messaging.New(cfg, log)
	tasker := tasking.New(cfg, log)
	ticketer := ticketing.New(cfg, log)
	quoter := quoting.New(cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule, err := leads.NewModule(
		leadStore, enrichmentModule.Service(),
		crmAdapter, notifier, tasker, ticketer, quoter,
		cfg, val, eventBus, log,
	)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}
	leadsModule.RegisterHandlers(eventBus)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:    cfg,
		Logger:    log,
		EventBus:  eventBus,
		Modules:   []apphttp.Module{leadsModule},
		StoreKind: storeKind,
		Collaborators: map[string]string{
			"enrichment": enrichmentModule.Service().Mode(),
			"crm":        crmAdapter.Mode(),
			"messaging":  notifier.Mode(),
			"tasking":    tasker.Mode(),
			"ticketing":  ticketer.Mode(),
			"quoting":    quoter.Mode(),
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initStore selects the Redis store when REDIS_URL is configured, falling
// back to the in-memory store otherwise.
func initStore(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (store.LeadStore, string) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		log.Info("REDIS_URL not configured; using in-memory lead store")
		return store.NewMemoryStore(), "memory"
	}

	redisStore, err := store.NewRedisStore(ctx, redisURL)
	if err != nil {
		log.Error("failed to connect to redis, falling back to in-memory store", "error", err)
		return store.NewMemoryStore(), "memory"
	}
	log.Info("redis lead store initialized")
	return redisStore, "redis"
}
