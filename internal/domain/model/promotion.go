package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion is a server-defined discount code.
type Promotion struct {
	ID          int64
	Code        string
	Title       string
	Description *string
	DiscountPct decimal.Decimal
	Active      bool
	ValidFrom   *time.Time
	ValidTo     *time.Time
}
