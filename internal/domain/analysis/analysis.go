// Package analysis computes the per-seller sales report: it indexes sellers
// and products, folds purchase records into per-seller totals, ranks sellers
// by profit and assigns bonuses.
//
// A call builds all of its state from scratch and shares nothing with other
// calls, so independent calls may run on separate goroutines.
package analysis

import (
	"github.com/okian/salesrank/internal/domain/model"
	"github.com/okian/salesrank/internal/domain/strategy"
	"github.com/okian/salesrank/internal/domain/types"
)

// Options carries the two required calculation strategies.
type Options struct {
	CalculateRevenue strategy.RevenueFunc
	CalculateBonus   strategy.BonusFunc
}

// DefaultOptions returns SimpleRevenue and BonusByProfit.
func DefaultOptions() Options {
	return Options{
		CalculateRevenue: strategy.SimpleRevenue,
		CalculateBonus:   strategy.BonusByProfit,
	}
}

// Stats describes how the purchase records were folded.
type Stats struct {
	Sellers         int
	RecordsFolded   int
	RecordsSkipped  int
	ItemsFolded     int
	UnknownSKUItems int
}

// Result is the report together with fold statistics.
type Result struct {
	Rows  []types.ReportRow
	Stats Stats
}

// Analyze returns one report row per seller, highest profit first.
func Analyze(data *model.Dataset, opts Options) ([]types.ReportRow, error) {
	res, err := Run(data, opts)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// Run is Analyze that also reports fold statistics. It fails before doing
// any work when the input or options are invalid.
func Run(data *model.Dataset, opts Options) (Result, error) {
	if err := validate(data, opts); err != nil {
		return Result{}, err
	}

	idx := buildIndex(data)
	stats := idx.fold(data.PurchaseRecords, opts.CalculateRevenue)
	rows := rank(idx.sellers, opts.CalculateBonus)

	stats.Sellers = len(rows)
	return Result{Rows: rows, Stats: stats}, nil
}

func validate(data *model.Dataset, opts Options) error {
	if data == nil {
		return ErrMissingInput
	}
	switch {
	case len(data.Sellers) == 0:
		return &CollectionError{Collection: CollectionSellers}
	case len(data.Products) == 0:
		return &CollectionError{Collection: CollectionProducts}
	case len(data.PurchaseRecords) == 0:
		return &CollectionError{Collection: CollectionPurchaseRecords}
	}

	var missing []string
	if opts.CalculateRevenue == nil {
		missing = append(missing, "calculateRevenue")
	}
	if opts.CalculateBonus == nil {
		missing = append(missing, "calculateBonus")
	}
	if len(missing) > 0 {
		return &StrategyError{Missing: missing}
	}
	return nil
}
