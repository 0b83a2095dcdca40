package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/cleanorder/internal/domain/errors"
	"github.com/polkiloo/cleanorder/internal/domain/model"
)

// LocalDateTimeLayout is the zone-less timestamp format used on the wire.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// parseTimestamp accepts zoned and local timestamps. Unparseable values yield zero time.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseOptionalTimestamp(raw *string) *time.Time {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil
	}
	t := parseTimestamp(*raw)
	if t.IsZero() {
		return nil
	}
	return &t
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
}

func (r authResponse) token() (string, error) {
	if r.Token == "" {
		return "", fmt.Errorf("auth token: %w", domainErrors.ErrEmptyResponse)
	}
	return r.Token, nil
}

type profileResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"createdAt"`
}

func (r profileResponse) toModel() *model.Profile {
	return &model.Profile{
		ID:        r.ID,
		Email:     r.Email,
		Name:      r.Name,
		Phone:     r.Phone,
		CreatedAt: parseTimestamp(r.CreatedAt),
	}
}

type profileUpdateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type promotionResponse struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	DiscountPct decimal.Decimal `json:"discountPct"`
	Active      bool            `json:"active"`
	ValidFrom   *string         `json:"validFrom"`
	ValidTo     *string         `json:"validTo"`
}

func (r promotionResponse) toModel() model.Promotion {
	return model.Promotion{
		ID:          r.ID,
		Code:        r.Code,
		Title:       r.Title,
		Description: r.Description,
		DiscountPct: r.DiscountPct,
		Active:      r.Active,
		ValidFrom:   parseOptionalTimestamp(r.ValidFrom),
		ValidTo:     parseOptionalTimestamp(r.ValidTo),
	}
}

type orderSummaryResponse struct {
	ID                string          `json:"id"`
	CreatedAt         string          `json:"createdAt"`
	ScheduledDateTime string          `json:"scheduledDateTime"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Status            string          `json:"status"`
}

func (r orderSummaryResponse) toModel() model.OrderSummary {
	return model.OrderSummary{
		ID:          r.ID,
		CreatedAt:   parseTimestamp(r.CreatedAt),
		ScheduledAt: parseTimestamp(r.ScheduledDateTime),
		TotalAmount: r.TotalAmount,
		Status:      model.OrderStatus(r.Status),
	}
}

type orderDetailsResponse struct {
	ID                string          `json:"id"`
	UserID            int64           `json:"userId"`
	CreatedAt         string          `json:"createdAt"`
	ScheduledDateTime string          `json:"scheduledDateTime"`
	Address           string          `json:"address"`
	PromoCode         *string         `json:"promoCode"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Status            string          `json:"status"`
	Services          []int           `json:"services"`
	ImageURLs         []string        `json:"imageUrls"`
}

func (r orderDetailsResponse) toModel() *model.Order {
	services := make([]model.ServiceID, 0, len(r.Services))
	for _, id := range r.Services {
		services = append(services, model.ServiceID(id))
	}
	return &model.Order{
		ID:          r.ID,
		UserID:      r.UserID,
		CreatedAt:   parseTimestamp(r.CreatedAt),
		ScheduledAt: parseTimestamp(r.ScheduledDateTime),
		Address:     r.Address,
		PromoCode:   r.PromoCode,
		TotalAmount: r.TotalAmount,
		Status:      model.OrderStatus(r.Status),
		Services:    services,
		ImageURLs:   r.ImageURLs,
	}
}

type pageResponse[T any] struct {
	Content       []T `json:"content"`
	TotalPages    int `json:"totalPages"`
	TotalElements int `json:"totalElements"`
	Number        int `json:"number"`
	Size          int `json:"size"`
}

type analyticsEventRequest struct {
	UserID    *int64  `json:"userId"`
	EventType string  `json:"eventType"`
	Details   *string `json:"details"`
}
