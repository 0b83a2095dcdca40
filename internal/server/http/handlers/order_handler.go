package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cleanorder/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderSummaries(orders))
}

// Details handles GET /api/orders/:id.
func (h *OrderHandler) Details(c *gin.Context) {
	order, err := h.facade.OrderDetails(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// Search handles GET /api/orders/search.
func (h *OrderHandler) Search(c *gin.Context) {
	page, err := intQuery(c, "page", 0)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	size, err := intQuery(c, "size", 0)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.SearchOrders(c.Request.Context(), c.Query("q"), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(result))
}

// History handles GET /api/orders/search/history.
func (h *OrderHandler) History(c *gin.Context) {
	history, err := h.facade.SearchHistory(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// ClearHistory handles DELETE /api/orders/search/history.
func (h *OrderHandler) ClearHistory(c *gin.Context) {
	if err := h.facade.ClearSearchHistory(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}
