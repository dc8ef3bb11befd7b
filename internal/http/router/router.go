// Package router builds the gin engine from the application modules.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	apphttp "leadflow_backend/internal/http"
	"leadflow_backend/internal/http/middleware"
)

// New assembles the engine: recovery, request ID, request logging, CORS, the
// health endpoint, and every module's routes under /api.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(app.Logger))

	corsCfg := cors.DefaultConfig()
	if app.Config.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = app.Config.GetCORSOrigins()
		corsCfg.AllowCredentials = app.Config.GetCORSAllowCreds()
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-ID")
	engine.Use(cors.New(corsCfg))

	engine.GET("/api/health", healthHandler(app))

	ctx := &apphttp.RouterContext{
		Engine: engine,
		API:    engine.Group("/api"),
	}
	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("module routes registered", "module", module.Name())
	}

	return engine
}

// healthHandler reports which collaborators run live versus in fallback mode.
func healthHandler(app *apphttp.App) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"store":         app.StoreKind,
			"collaborators": app.Collaborators,
		})
	}
}
