package calculator

import (
	"quote-pricing/core/pricing"
	"quote-pricing/core/types"
)

// LineItems returns the flat recurring charges the input selects: the
// service tier and the managed QBO subscription. Bundle rules never touch these.
func LineItems(in types.QuoteInput, table *pricing.Table) ([]types.LineItem, error) {
	var items []types.LineItem

	if in.ServiceTier != "" {
		fee, err := table.ServiceTiers.Resolve(in.ServiceTier)
		if err != nil {
			return nil, err
		}
		items = append(items, types.LineItem{
			Item:        types.LineItemServiceTier,
			Description: "Service tier: " + string(in.ServiceTier),
			MonthlyFee:  fee.Round(0).IntPart(),
		})
	}

	if in.QBOSubscription {
		items = append(items, types.LineItem{
			Item:        types.LineItemQBO,
			Description: "Managed QBO subscription",
			MonthlyFee:  table.QBOMonthlyFee.Round(0).IntPart(),
		})
	}

	return items, nil
}
