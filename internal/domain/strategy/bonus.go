package strategy

import "github.com/okian/salesrank/internal/domain/types"

// Default bonus rates, as a fraction of profit.
const (
	defaultLeaderRate   = 0.15
	defaultRunnerUpRate = 0.10
	defaultLastRate     = 0
	defaultOtherRate    = 0.05
)

// TierRates holds the profit share paid per rank tier.
type TierRates struct {
	Leader   float64 // rank 0
	RunnerUp float64 // ranks 1 and 2
	Last     float64 // the lowest ranked seller
	Default  float64 // everyone else
}

// DefaultTierRates returns 15% / 10% / 0% / 5%.
func DefaultTierRates() TierRates {
	return TierRates{
		Leader:   defaultLeaderRate,
		RunnerUp: defaultRunnerUpRate,
		Last:     defaultLastRate,
		Default:  defaultOtherRate,
	}
}

// Rule pays Rate of profit when Match reports true for a rank.
type Rule struct {
	Name  string
	Match func(rank, total int) bool
	Rate  float64
}

// Rules returns the tier rules in evaluation order. Order matters: with
// three sellers or fewer the last rank is also a leader or runner-up rank,
// and those earlier rules win.
func (r TierRates) Rules() []Rule {
	return []Rule{
		{Name: "leader", Rate: r.Leader, Match: func(rank, _ int) bool { return rank == 0 }},
		{Name: "runner_up", Rate: r.RunnerUp, Match: func(rank, _ int) bool { return rank == 1 || rank == 2 }},
		{Name: "last", Rate: r.Last, Match: func(rank, total int) bool { return rank == total-1 }},
	}
}

// Tier returns the name of the first rule matching rank, or "default".
func (r TierRates) Tier(rank, total int) string {
	for _, rule := range r.Rules() {
		if rule.Match(rank, total) {
			return rule.Name
		}
	}
	return "default"
}

// NewTieredBonus builds a BonusFunc paying a share of profit picked by the
// first matching rule, falling back to rates.Default.
func NewTieredBonus(rates TierRates) BonusFunc {
	rules := rates.Rules()
	return func(rank, total int, seller types.SellerSummary) float64 {
		for _, rule := range rules {
			if rule.Match(rank, total) {
				return seller.Profit * rule.Rate
			}
		}
		return seller.Profit * rates.Default
	}
}

// BonusByProfit is the reference policy built from DefaultTierRates.
func BonusByProfit(rank, total int, seller types.SellerSummary) float64 {
	return referenceBonus(rank, total, seller)
}

var referenceBonus = NewTieredBonus(DefaultTierRates())
