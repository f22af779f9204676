package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/avoronova/sympathy/internal/delivery/http/handler"
	"github.com/avoronova/sympathy/internal/delivery/http/middleware"
	"github.com/avoronova/sympathy/internal/domain"
)

// ReadinessCheck reports whether the service's backing stores are reachable.
type ReadinessCheck func(ctx context.Context) error

type Router struct {
	authHandler    *handler.AuthHandler
	matchHandler   *handler.MatchHandler
	listHandler    *handler.ListHandler
	authMiddleware *middleware.AuthMiddleware
	staticDir      string
	readiness      ReadinessCheck
}

func NewRouter(
	authHandler *handler.AuthHandler,
	matchHandler *handler.MatchHandler,
	listHandler *handler.ListHandler,
	authMiddleware *middleware.AuthMiddleware,
	staticDir string,
	readiness ReadinessCheck,
) *Router {
	return &Router{
		authHandler:    authHandler,
		matchHandler:   matchHandler,
		listHandler:    listHandler,
		authMiddleware: authMiddleware,
		staticDir:      staticDir,
		readiness:      readiness,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidators()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// Readiness probes the backing stores, liveness above does not.
	router.GET("/health/ready", func(c *gin.Context) {
		if r.readiness != nil {
			if err := r.readiness(c.Request.Context()); err != nil {
				c.JSON(503, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Processed avatars are served straight from disk
	router.Static("/static", r.staticDir)

	api := router.Group("/api")
	{
		clients := api.Group("/clients")
		{
			clients.POST("/create", r.authHandler.Create)
			clients.POST("/:id/match", r.authMiddleware.RequireAuth(), r.matchHandler.Match)
		}

		api.GET("/list", r.authMiddleware.RequireAuth(), r.listHandler.List)
	}

	return router
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
			g := fl.Field().String()
			return g == domain.GenderMale || g == domain.GenderFemale
		})
	}
}
