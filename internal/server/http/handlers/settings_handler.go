package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cleanorder/internal/server/http/dto"
)

// SettingsHandler serves user preferences.
type SettingsHandler struct {
	facade SettingsFacade
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(facade SettingsFacade) *SettingsHandler {
	return &SettingsHandler{facade: facade}
}

// Get handles GET /api/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	h.write(c)
}

// Update handles PUT /api/settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.SettingsPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	ctx := c.Request.Context()
	if err := h.facade.UpdateSettings(ctx, req.Model()); err != nil {
		writeError(c, err)
		return
	}
	if req.NotificationPermission != nil {
		if err := h.facade.SetNotificationPermission(ctx, *req.NotificationPermission); err != nil {
			writeError(c, err)
			return
		}
	}
	h.write(c)
}

func (h *SettingsHandler) write(c *gin.Context) {
	ctx := c.Request.Context()
	s, err := h.facade.Settings(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	permission, err := h.facade.NotificationPermission(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSettingsPayload(s, permission))
}
