package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// OrderSummaryResponse is a compact order entry.
type OrderSummaryResponse struct {
	ID                string          `json:"id"`
	CreatedAt         time.Time       `json:"createdAt"`
	ScheduledDateTime time.Time       `json:"scheduledDateTime"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Status            string          `json:"status"`
}

// OrderResponse is a detailed order view.
type OrderResponse struct {
	ID                string          `json:"id"`
	UserID            int64           `json:"userId"`
	CreatedAt         time.Time       `json:"createdAt"`
	ScheduledDateTime time.Time       `json:"scheduledDateTime"`
	Address           string          `json:"address"`
	Services          []int           `json:"services"`
	ImageURLs         []string        `json:"imageUrls"`
	PromoCode         *string         `json:"promoCode,omitempty"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Status            string          `json:"status"`
}

// PageResponse is a page of order summaries.
type PageResponse struct {
	Content       []OrderSummaryResponse `json:"content"`
	TotalPages    int                    `json:"totalPages"`
	TotalElements int                    `json:"totalElements"`
	Number        int                    `json:"number"`
	Size          int                    `json:"size"`
}

// NewOrderSummaries maps summaries to responses.
func NewOrderSummaries(items []model.OrderSummary) []OrderSummaryResponse {
	out := make([]OrderSummaryResponse, 0, len(items))
	for _, o := range items {
		out = append(out, OrderSummaryResponse{
			ID:                o.ID,
			CreatedAt:         o.CreatedAt,
			ScheduledDateTime: o.ScheduledAt,
			TotalAmount:       o.TotalAmount,
			Status:            string(o.Status),
		})
	}
	return out
}

// NewOrderResponse maps a detailed order.
func NewOrderResponse(o *model.Order) OrderResponse {
	services := make([]int, 0, len(o.Services))
	for _, id := range o.Services {
		services = append(services, int(id))
	}
	images := o.ImageURLs
	if images == nil {
		images = []string{}
	}
	return OrderResponse{
		ID:                o.ID,
		UserID:            o.UserID,
		CreatedAt:         o.CreatedAt,
		ScheduledDateTime: o.ScheduledAt,
		Address:           o.Address,
		Services:          services,
		ImageURLs:         images,
		PromoCode:         o.PromoCode,
		TotalAmount:       o.TotalAmount,
		Status:            string(o.Status),
	}
}

// NewPageResponse maps a page of summaries.
func NewPageResponse(p *model.Page[model.OrderSummary]) PageResponse {
	return PageResponse{
		Content:       NewOrderSummaries(p.Content),
		TotalPages:    p.TotalPages,
		TotalElements: p.TotalElements,
		Number:        p.Number,
		Size:          p.Size,
	}
}
