package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// PromotionResponse describes an active promotion.
type PromotionResponse struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	ValidFrom   *time.Time      `json:"validFrom,omitempty"`
	ValidTo     *time.Time      `json:"validTo,omitempty"`
}

// NewPromotionResponses maps promotions.
func NewPromotionResponses(items []model.Promotion) []PromotionResponse {
	out := make([]PromotionResponse, 0, len(items))
	for _, p := range items {
		out = append(out, PromotionResponse{
			ID:          p.ID,
			Code:        p.Code,
			Title:       p.Title,
			Description: p.Description,
			DiscountPct: p.DiscountPct,
			ValidFrom:   p.ValidFrom,
			ValidTo:     p.ValidTo,
		})
	}
	return out
}
