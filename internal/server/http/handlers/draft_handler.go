package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/cleanorder/internal/domain/model"
	"github.com/polkiloo/cleanorder/internal/server/http/dto"
)

// DraftHandler manages order drafts and their submission.
type DraftHandler struct {
	facade DraftFacade
}

// NewDraftHandler constructs DraftHandler.
func NewDraftHandler(facade DraftFacade) *DraftHandler {
	return &DraftHandler{facade: facade}
}

// Create handles POST /api/drafts.
func (h *DraftHandler) Create(c *gin.Context) {
	c.JSON(http.StatusCreated, dto.NewDraftResponse(h.facade.CreateDraft()))
}

// Get handles GET /api/drafts/:id.
func (h *DraftHandler) Get(c *gin.Context) {
	h.respond(c)(h.facade.Draft(c.Param("id")))
}

// Discard handles DELETE /api/drafts/:id.
func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.facade.DiscardDraft(c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleService handles PUT /api/drafts/:id/services/:serviceID.
func (h *DraftHandler) ToggleService(c *gin.Context) {
	serviceID, err := strconv.Atoi(c.Param("serviceID"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	var req dto.ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c)(h.facade.ToggleService(c.Param("id"), model.ServiceID(serviceID), *req.Selected))
}

// SetAddress handles PUT /api/drafts/:id/address.
func (h *DraftHandler) SetAddress(c *gin.Context) {
	var req dto.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c)(h.facade.SetAddress(c.Param("id"), req.Address))
}

// SetSchedule handles PUT /api/drafts/:id/schedule.
func (h *DraftHandler) SetSchedule(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c)(h.facade.SetSchedule(c.Param("id"), req.ScheduledDateTime))
}

// AddImage handles POST /api/drafts/:id/images.
func (h *DraftHandler) AddImage(c *gin.Context) {
	var req dto.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c)(h.facade.AddImage(c.Param("id"), req.Ref))
}

// RemoveImage handles DELETE /api/drafts/:id/images.
func (h *DraftHandler) RemoveImage(c *gin.Context) {
	var req dto.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c)(h.facade.RemoveImage(c.Param("id"), req.Ref))
}

// SetPromo handles PUT /api/drafts/:id/promo. An unknown code is not an
// HTTP error; the draft carries promoError instead.
func (h *DraftHandler) SetPromo(c *gin.Context) {
	var req dto.PromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respond(c)(h.facade.SetPromoCode(c.Param("id"), req.Code))
}

// ClearPromo handles DELETE /api/drafts/:id/promo.
func (h *DraftHandler) ClearPromo(c *gin.Context) {
	h.respond(c)(h.facade.ClearPromoCode(c.Param("id")))
}

// Submit handles POST /api/drafts/:id/submit.
func (h *DraftHandler) Submit(c *gin.Context) {
	res, err := h.facade.SubmitDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	switch res.Outcome {
	case model.SubmitSuccess:
		c.JSON(http.StatusCreated, dto.SubmitResponse{ID: res.Order.ID, Degraded: res.Degraded})
	case model.SubmitValidationFailed:
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: "draft is incomplete", Violations: res.Violations})
	case model.SubmitServerError:
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Message: res.Message})
	case model.SubmitNetworkError:
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Message: res.Message})
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func (h *DraftHandler) respond(c *gin.Context) func(model.OrderDraft, error) {
	return func(d model.OrderDraft, err error) {
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewDraftResponse(d))
	}
}
