package model

import "github.com/shopspring/decimal"

// Money is a decimal amount in the service currency.
type Money = decimal.Decimal

// ServiceID identifies a dry-cleaning service offered by the catalog.
type ServiceID int

// ServicePrices maps catalog services to their base price.
type ServicePrices map[ServiceID]Money
