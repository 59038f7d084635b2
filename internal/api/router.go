package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/timmy/contentflow/internal/api/handler"
	"github.com/timmy/contentflow/internal/api/middleware"
	"github.com/timmy/contentflow/internal/config"
	"github.com/timmy/contentflow/internal/studio"
	"github.com/timmy/contentflow/internal/web"
)

// Dependencies are the services the router wires into handlers.
type Dependencies struct {
	Ideas       studio.IdeaFetcher
	Provider    string
	Sessions    *studio.Sessions
	Generations handler.GenerationLister
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware("/health"))

	healthHandler := handler.NewHealthHandler(deps.Provider)
	studioHandler := handler.NewStudioHandler()
	ideasHandler := handler.NewIdeasHandler(deps.Ideas)
	generationsHandler := handler.NewGenerationsHandler(deps.Generations)

	r.GET("/health", healthHandler.Health)

	// Page routes
	page := r.Group("/")
	page.Use(middleware.Session(deps.Sessions, cfg.Session.CookieName, cfg.Session.IdleTimeout))
	{
		page.GET("/", studioHandler.Index)
		page.POST("/generate", studioHandler.Generate)
		page.POST("/platform", studioHandler.SelectPlatform)
		page.POST("/cards/:index/toggle", studioHandler.ToggleScript)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.CORS(cfg.Server.CORS))
	{
		v1.POST("/prompt", ideasHandler.Preview)
		v1.POST("/ideas", ideasHandler.Generate)
		v1.GET("/generations", generationsHandler.List)
		// Preflight requests are answered by the CORS middleware.
		v1.OPTIONS("/*path", func(c *gin.Context) {})
	}

	return r, nil
}
