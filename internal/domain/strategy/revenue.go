// Package strategy defines the pluggable business rules of the sales
// analysis: how much an item earns and how much a ranked seller is paid.
package strategy

import (
	"github.com/okian/salesrank/internal/domain/model"
	"github.com/okian/salesrank/internal/domain/types"
)

const percent = 100

// RevenueFunc returns the net revenue of a purchase item. product is nil
// when the item's sku is not in the catalog. Implementations must be pure.
type RevenueFunc func(item model.PurchaseItem, product *model.Product) float64

// BonusFunc returns the bonus for the seller at zero-based rank among total
// sellers ordered by profit descending. Implementations must be pure.
type BonusFunc func(rank, total int, seller types.SellerSummary) float64

// SimpleRevenue is sale price times quantity with the item discount applied.
// The product card is not consulted.
func SimpleRevenue(item model.PurchaseItem, _ *model.Product) float64 {
	discountFactor := 1 - item.DiscountPercent()/percent
	return item.SalePrice * float64(item.Quantity) * discountFactor
}
