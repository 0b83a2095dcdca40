package pricing

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/cleanorder/internal/domain/model"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotal sums prices of selected services and applies the matched
// promotion percentage when the discount is applied. Services without a
// price contribute zero.
func ComputeTotal(selected map[model.ServiceID]bool, prices model.ServicePrices, matched *model.Promotion, discountApplied bool) model.Money {
	base := decimal.Zero
	for id, on := range selected {
		if on {
			base = base.Add(prices[id])
		}
	}

	if !discountApplied || matched == nil {
		return base
	}

	factor := decimal.NewFromInt(1).Sub(matched.DiscountPct.Div(hundred))
	return base.Mul(factor)
}

// ParsePrices decodes a "id=price,id=price" catalog description.
func ParsePrices(raw string) (model.ServicePrices, error) {
	prices := make(model.ServicePrices)
	for _, item := range strings.Split(raw, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		idPart, pricePart, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid price entry %q", item)
		}
		id, err := strconv.Atoi(strings.TrimSpace(idPart))
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid service id %q", idPart)
		}
		price, err := decimal.NewFromString(strings.TrimSpace(pricePart))
		if err != nil {
			return nil, fmt.Errorf("invalid price for service %d: %w", id, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("negative price for service %d", id)
		}
		prices[model.ServiceID(id)] = price
	}
	if len(prices) == 0 {
		return nil, fmt.Errorf("service catalog is empty")
	}
	return prices, nil
}
