package holdings

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/wealthmap/wealthmap/pkg/chart"
)

// Allocation aggregates holdings into per-asset-type chart items, sorted
// by value descending (ties broken by type name for determinism). Types
// outside the allow set are skipped; a nil or empty allow set admits all
// valid types.
func Allocation(hs []Holding, allow []AssetType) []chart.Item {
	admitted := make(map[AssetType]bool, len(allow))
	for _, t := range allow {
		admitted[t] = true
	}

	totals := make(map[AssetType]decimal.Decimal)
	for _, h := range hs {
		if len(allow) > 0 && !admitted[h.Type] {
			continue
		}
		totals[h.Type] = totals[h.Type].Add(h.MarketValue())
	}

	items := make([]chart.Item, 0, len(totals))
	for t, value := range totals {
		v, _ := value.Float64()
		items = append(items, chart.Item{
			ID:       string(t),
			Label:    t.DisplayName(),
			Value:    v,
			ColorKey: string(t),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value > items[j].Value
		}
		return items[i].ID < items[j].ID
	})
	return items
}

// TotalValue sums the market value of all holdings.
func TotalValue(hs []Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range hs {
		total = total.Add(h.MarketValue())
	}
	return total
}

// GainLossItems aggregates holdings into per-asset-type unrealized
// gain/loss chart items for diverging bar charts. Values can be negative.
func GainLossItems(hs []Holding) []chart.Item {
	totals := make(map[AssetType]decimal.Decimal)
	for _, h := range hs {
		totals[h.Type] = totals[h.Type].Add(h.GainLoss())
	}

	items := make([]chart.Item, 0, len(totals))
	for t, value := range totals {
		v, _ := value.Float64()
		items = append(items, chart.Item{
			ID:       string(t),
			Label:    t.DisplayName(),
			Value:    v,
			ColorKey: string(t),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Value != items[j].Value {
			return items[i].Value > items[j].Value
		}
		return items[i].ID < items[j].ID
	})
	return items
}
