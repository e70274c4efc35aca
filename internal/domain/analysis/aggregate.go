package analysis

import (
	"github.com/okian/salesrank/internal/domain/model"
	"github.com/okian/salesrank/internal/domain/strategy"
)

// accumulator holds one seller's running totals while records are folded.
type accumulator struct {
	id   string
	name string

	// sold maps sku to units; skus keeps first-seen order for tie-breaks.
	sold map[string]int
	skus []string

	salesCount int
	revenue    float64
	profit     float64
}

func newAccumulator(s model.Seller) *accumulator {
	return &accumulator{
		id:   s.ID,
		name: s.DisplayName(),
		sold: make(map[string]int),
	}
}

func (a *accumulator) addSold(sku string, quantity int) {
	if _, ok := a.sold[sku]; !ok {
		a.skus = append(a.skus, sku)
	}
	a.sold[sku] += quantity
}

// index is the read-only lookup state built before folding.
type index struct {
	// sellers is in input order; byID points into it.
	sellers  []*accumulator
	byID     map[string]*accumulator
	products map[string]*model.Product
}

// buildIndex creates one accumulator per seller. With duplicate ids or skus
// the last occurrence owns the key.
func buildIndex(data *model.Dataset) *index {
	idx := &index{
		sellers:  make([]*accumulator, 0, len(data.Sellers)),
		byID:     make(map[string]*accumulator, len(data.Sellers)),
		products: make(map[string]*model.Product, len(data.Products)),
	}
	for _, s := range data.Sellers {
		acc := newAccumulator(s)
		idx.sellers = append(idx.sellers, acc)
		idx.byID[s.ID] = acc
	}
	for i := range data.Products {
		p := &data.Products[i]
		idx.products[p.SKU] = p
	}
	return idx
}

// fold adds every record into its seller's accumulator. Records of unknown
// sellers are skipped; items of unknown products cost nothing.
func (idx *index) fold(records []model.PurchaseRecord, revenue strategy.RevenueFunc) Stats {
	var st Stats
	for _, rec := range records {
		acc, ok := idx.byID[rec.SellerID]
		if !ok {
			st.RecordsSkipped++
			continue
		}
		st.RecordsFolded++

		acc.salesCount++
		acc.revenue += rec.Amount()

		for _, item := range rec.Items {
			product := idx.products[item.SKU]
			cost := 0.0
			if product != nil {
				cost = product.PurchasePrice * float64(item.Quantity)
			} else {
				st.UnknownSKUItems++
			}
			acc.profit += revenue(item, product) - cost
			acc.addSold(item.SKU, item.Quantity)
			st.ItemsFolded++
		}
	}
	return st
}
