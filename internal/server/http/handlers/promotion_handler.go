package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cleanorder/internal/server/http/dto"
)

// PromotionHandler serves the promotions list.
type PromotionHandler struct {
	facade PromotionFacade
}

// NewPromotionHandler constructs PromotionHandler.
func NewPromotionHandler(facade PromotionFacade) *PromotionHandler {
	return &PromotionHandler{facade: facade}
}

// List handles GET /api/promotions. With cached=true the last snapshot is
// returned without contacting the server.
func (h *PromotionHandler) List(c *gin.Context) {
	if c.Query("cached") == "true" {
		c.JSON(http.StatusOK, dto.NewPromotionResponses(h.facade.CachedPromotions()))
		return
	}
	items, err := h.facade.Promotions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPromotionResponses(items))
}
