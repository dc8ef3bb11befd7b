package http

import (
	"leadflow_backend/internal/events"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
)

// App holds the fully initialized application dependencies. It is populated
// by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the HTTP server configuration.
	Config config.HTTPConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
	// StoreKind names the active lead store backend (memory or redis).
	StoreKind string
	// Collaborators maps each external collaborator to its mode (live or
	// mock), reported on the health endpoint.
	Collaborators map[string]string
}
