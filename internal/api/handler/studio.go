package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timmy/contentflow/internal/api/middleware"
	"github.com/timmy/contentflow/internal/domain"
	"github.com/timmy/contentflow/internal/logger"
	"github.com/timmy/contentflow/internal/studio"
	"github.com/timmy/contentflow/internal/web"
)

// StudioHandler serves the HTML page. Every form post redirects back to /.
type StudioHandler struct{}

// NewStudioHandler creates a new studio handler.
func NewStudioHandler() *StudioHandler {
	return &StudioHandler{}
}

type generateForm struct {
	Platform string `form:"platform"`
	Topic    string `form:"topic"`
	Duration string `form:"duration"`
}

// Index handles GET /.
func (h *StudioHandler) Index(c *gin.Context) {
	ctrl := middleware.Controller(c)
	if ctrl == nil {
		c.String(http.StatusInternalServerError, domain.MsgUnknown)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, web.PageTemplate, web.NewPage(ctrl.State()))
}

// Generate handles POST /generate. The completion call runs inside this
// request; the redirect happens once it has finished.
func (h *StudioHandler) Generate(c *gin.Context) {
	ctrl := middleware.Controller(c)
	if ctrl == nil {
		c.String(http.StatusInternalServerError, domain.MsgUnknown)
		return
	}

	var form generateForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid form: "+err.Error())
		return
	}
	platform, err := domain.ParsePlatform(form.Platform)
	if err != nil {
		c.String(http.StatusBadRequest, domain.UserMessage(err))
		return
	}

	ctx := c.Request.Context()
	_, err = ctrl.Submit(ctx, domain.IdeaRequest{
		Platform: platform,
		Topic:    form.Topic,
		Duration: form.Duration,
	})
	if errors.Is(err, studio.ErrBusy) {
		logger.CtxInfo(ctx, "Submit ignored, a request is already in progress")
	}

	c.Redirect(http.StatusSeeOther, "/")
}

// SelectPlatform handles POST /platform.
func (h *StudioHandler) SelectPlatform(c *gin.Context) {
	ctrl := middleware.Controller(c)
	if ctrl == nil {
		c.String(http.StatusInternalServerError, domain.MsgUnknown)
		return
	}

	platform, err := domain.ParsePlatform(c.PostForm("platform"))
	if err != nil {
		c.String(http.StatusBadRequest, domain.UserMessage(err))
		return
	}
	// Switching while loading has no effect.
	_, _ = ctrl.SelectPlatform(platform)

	c.Redirect(http.StatusSeeOther, "/")
}

// ToggleScript handles POST /cards/:index/toggle.
func (h *StudioHandler) ToggleScript(c *gin.Context) {
	ctrl := middleware.Controller(c)
	if ctrl == nil {
		c.String(http.StatusInternalServerError, domain.MsgUnknown)
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.String(http.StatusBadRequest, "Invalid card index")
		return
	}
	if _, err := ctrl.ToggleScript(index); err != nil {
		c.String(http.StatusNotFound, err.Error())
		return
	}

	c.Redirect(http.StatusSeeOther, "/#card-"+strconv.Itoa(index))
}
