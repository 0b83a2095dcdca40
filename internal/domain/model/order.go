package model

import "time"

// OrderStatus describes server-side order lifecycle.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusReady      OrderStatus = "READY"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Order is a server-confirmed dry-cleaning order.
type Order struct {
	ID          string
	UserID      int64
	CreatedAt   time.Time
	ScheduledAt time.Time
	Address     string
	PromoCode   *string
	TotalAmount Money
	Status      OrderStatus
	Services    []ServiceID
	ImageURLs   []string
}

// OrderSummary is a compact order view used by list and search endpoints.
type OrderSummary struct {
	ID          string
	CreatedAt   time.Time
	ScheduledAt time.Time
	TotalAmount Money
	Status      OrderStatus
}

// Page is a paginated slice returned by the remote API.
type Page[T any] struct {
	Content       []T
	TotalPages    int
	TotalElements int
	Number        int
	Size          int
}
