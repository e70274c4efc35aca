package analysis

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/okian/salesrank/internal/domain/strategy"
	"github.com/okian/salesrank/internal/domain/types"
)

const (
	topProductsLimit = 10
	reportPlaces     = 2
)

// rank orders sellers by profit and shapes the report. sellers must be in
// input order; the sort is stable so equal profits keep that order.
func rank(sellers []*accumulator, bonus strategy.BonusFunc) []types.ReportRow {
	ordered := make([]*accumulator, len(sellers))
	copy(ordered, sellers)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].profit > ordered[j].profit
	})

	total := len(ordered)
	rows := make([]types.ReportRow, 0, total)
	for i, acc := range ordered {
		b := bonus(i, total, acc.summary())
		rows = append(rows, types.ReportRow{
			SellerID:    acc.id,
			Name:        acc.name,
			Revenue:     round(acc.revenue),
			Profit:      round(acc.profit),
			SalesCount:  acc.salesCount,
			TopProducts: acc.topProducts(topProductsLimit),
			Bonus:       round(b),
		})
	}
	return rows
}

func (a *accumulator) summary() types.SellerSummary {
	return types.SellerSummary{
		SellerID:   a.id,
		Name:       a.name,
		Revenue:    a.revenue,
		Profit:     a.profit,
		SalesCount: a.salesCount,
	}
}

// topProducts returns up to limit skus by quantity descending, first-seen
// order breaking ties.
func (a *accumulator) topProducts(limit int) []types.TopProduct {
	top := make([]types.TopProduct, 0, len(a.skus))
	for _, sku := range a.skus {
		top = append(top, types.TopProduct{SKU: sku, Quantity: a.sold[sku]})
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Quantity > top[j].Quantity
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top
}

// round rounds v to two decimals, half away from zero, on the exact binary
// value of v. 1.005 is stored as 1.00499... and rounds to 1.
func round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloatWithExponent(v, -reportPlaces).InexactFloat64()
}
