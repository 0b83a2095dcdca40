package dto

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// ServiceRequest toggles a catalog service.
type ServiceRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

// AddressRequest sets the pickup address.
type AddressRequest struct {
	Address string `json:"address"`
}

// ScheduleRequest sets the pickup date and time.
type ScheduleRequest struct {
	ScheduledDateTime time.Time `json:"scheduledDateTime" binding:"required"`
}

// ImageRequest references a local image file.
type ImageRequest struct {
	Ref string `json:"ref" binding:"required"`
}

// PromoRequest carries a raw promo code.
type PromoRequest struct {
	Code string `json:"code"`
}

// ServiceSelection is a single catalog entry of a draft.
type ServiceSelection struct {
	ID       int  `json:"id"`
	Selected bool `json:"selected"`
}

// DraftResponse is the draft snapshot.
type DraftResponse struct {
	ID                string             `json:"id"`
	Services          []ServiceSelection `json:"services"`
	Address           string             `json:"address"`
	ScheduledDateTime *time.Time         `json:"scheduledDateTime,omitempty"`
	Images            []string           `json:"images"`
	PromoCode         string             `json:"promoCode,omitempty"`
	PromoError        *string            `json:"promoError,omitempty"`
	DiscountApplied   bool               `json:"discountApplied"`
	Total             decimal.Decimal    `json:"total"`
	Submitting        bool               `json:"submitting"`
	SubmittedOrderID  string             `json:"submittedOrderId,omitempty"`
	LastError         string             `json:"lastError,omitempty"`
}

// NewDraftResponse maps a draft snapshot to response with services in
// ascending id order.
func NewDraftResponse(d model.OrderDraft) DraftResponse {
	ids := make([]int, 0, len(d.SelectedServices))
	for id := range d.SelectedServices {
		ids = append(ids, int(id))
	}
	slices.Sort(ids)
	services := make([]ServiceSelection, 0, len(ids))
	for _, id := range ids {
		services = append(services, ServiceSelection{ID: id, Selected: d.SelectedServices[model.ServiceID(id)]})
	}

	images := d.SelectedImages
	if images == nil {
		images = []string{}
	}
	return DraftResponse{
		ID:                d.ID,
		Services:          services,
		Address:           d.Address,
		ScheduledDateTime: d.ScheduledAt,
		Images:            images,
		PromoCode:         d.PromoCode,
		PromoError:        d.PromoError,
		DiscountApplied:   d.DiscountApplied,
		Total:             d.Total,
		Submitting:        d.Submitting,
		SubmittedOrderID:  d.SubmittedOrderID,
		LastError:         d.LastError,
	}
}

// SubmitResponse reports a created order.
type SubmitResponse struct {
	ID       string `json:"id"`
	Degraded bool   `json:"degraded"`
}
