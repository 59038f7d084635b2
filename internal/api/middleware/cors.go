package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/timmy/contentflow/internal/config"
)

// CORS builds the JSON API CORS middleware. An empty origin list or a "*"
// entry allows every origin without credentials.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	allowAll := cfg.AllowAllOrigins
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}
		if origin != "" {
			origins = append(origins, origin)
		}
	}

	if allowAll || len(origins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}

	return cors.New(corsCfg)
}
