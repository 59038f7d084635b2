package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timmy/contentflow/internal/logger"
	"github.com/timmy/contentflow/internal/studio"
)

const controllerKey = "studio.controller"

// Session attaches the caller's studio controller. The cookie is reissued on
// every request so its lifetime slides with the server-side idle timeout.
func Session(sessions *studio.Sessions, cookieName string, maxIdle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := c.Cookie(cookieName)

		id, ctrl, _ := sessions.GetOrCreate(cookie)
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     cookieName,
			Value:    id,
			Path:     "/",
			MaxAge:   int(maxIdle.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		c.Request = c.Request.WithContext(logger.SetSessionID(c.Request.Context(), id))
		c.Set(controllerKey, ctrl)
		c.Next()
	}
}

// Controller returns the controller attached by Session.
func Controller(c *gin.Context) *studio.Controller {
	if v, ok := c.Get(controllerKey); ok {
		if ctrl, ok := v.(*studio.Controller); ok {
			return ctrl
		}
	}
	return nil
}
