package api

import (
	"net/http"
	"time"

	"github.com/blog-content-api/internal/config"
	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/service"
	"github.com/blog-content-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PreferenceHandler handles reader preference endpoints
type PreferenceHandler struct {
	services  *service.Services
	validator *validation.Validator
	timeout   time.Duration
	log       zerolog.Logger
}

// NewPreferenceHandler creates a new PreferenceHandler
func NewPreferenceHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		services:  services,
		validator: validation.NewValidator(),
		timeout:   cfg.Server.RequestTimeout,
		log:       log.With().Str("handler", "preference").Logger(),
	}
}

// CreateClient handles POST /v1/preferences
// Issues a client id under which preferences are stored.
func (h *PreferenceHandler) CreateClient(c *gin.Context) {
	id := h.services.Preference.NewClientID()
	h.log.Info().Str("client_id", id).Msg("Issued preference client id")

	c.JSON(http.StatusCreated, models.Preferences{
		ClientID: id,
		Theme:    models.ThemeSystem,
	})
}

// GetPreferences handles GET /v1/preferences/:client_id
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	c.JSON(http.StatusOK, h.services.Preference.Get(ctx, clientID))
}

// ClearPreferences handles DELETE /v1/preferences/:client_id
func (h *PreferenceHandler) ClearPreferences(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if err := h.services.Preference.Clear(ctx, clientID); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetTheme handles GET /v1/preferences/:client_id/theme
func (h *PreferenceHandler) GetTheme(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"client_id": clientID,
		"theme":     h.services.Preference.GetTheme(ctx, clientID, models.ThemeSystem),
	})
}

// SetTheme handles PUT /v1/preferences/:client_id/theme
func (h *PreferenceHandler) SetTheme(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	var req struct {
		Theme string `json:"theme"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	theme, errs := h.validator.ValidateTheme(req.Theme)
	if len(errs) > 0 {
		badRequest(c, errs)
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if err := h.services.Preference.SetTheme(ctx, clientID, theme); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_id": clientID,
		"theme":     theme,
	})
}

// GetNewsletter handles GET /v1/preferences/:client_id/newsletter
func (h *PreferenceHandler) GetNewsletter(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	c.JSON(http.StatusOK, gin.H{
		"client_id": clientID,
		"dismissed": h.services.Preference.GetNewsletterDismissed(ctx, clientID, false),
	})
}

// SetNewsletter handles PUT /v1/preferences/:client_id/newsletter
func (h *PreferenceHandler) SetNewsletter(c *gin.Context) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	var req struct {
		Dismissed *bool `json:"dismissed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Dismissed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dismissed (boolean) is required"})
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if err := h.services.Preference.SetNewsletterDismissed(ctx, clientID, *req.Dismissed); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_id": clientID,
		"dismissed": *req.Dismissed,
	})
}

// ResetTheme handles DELETE /v1/preferences/:client_id/theme
func (h *PreferenceHandler) ResetTheme(c *gin.Context) {
	h.reset(c, models.PreferenceTheme)
}

// ResetNewsletter handles DELETE /v1/preferences/:client_id/newsletter
func (h *PreferenceHandler) ResetNewsletter(c *gin.Context) {
	h.reset(c, models.PreferenceNewsletterDismissed)
}

func (h *PreferenceHandler) reset(c *gin.Context, key string) {
	clientID, ok := h.clientID(c)
	if !ok {
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if err := h.services.Preference.Delete(ctx, clientID, key); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *PreferenceHandler) clientID(c *gin.Context) (string, bool) {
	id := c.Param("client_id")
	if errs := h.validator.ValidateClientID(id); len(errs) > 0 {
		badRequest(c, errs)
		return "", false
	}
	return id, true
}
