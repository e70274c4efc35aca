// Package model contains the input records the analysis consumes.
package model

import "math"

// Seller is a salesperson the report produces a row for.
type Seller struct {
	ID        string `json:"id" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	StartDate string `json:"start_date,omitempty"`
	Position  string `json:"position,omitempty"`
}

// DisplayName joins first and last name the way report rows show it.
func (s Seller) DisplayName() string {
	return s.FirstName + " " + s.LastName
}

// Product is a catalog card. Only SKU and PurchasePrice take part in the
// computation; the rest is carried for callers that render catalogs.
type Product struct {
	SKU           string  `json:"sku" validate:"required"`
	PurchasePrice float64 `json:"purchase_price"`
	Name          string  `json:"name,omitempty"`
	Category      string  `json:"category,omitempty"`
	SalePrice     float64 `json:"sale_price,omitempty"`
}

// PurchaseItem is a single line of a receipt. An unknown or empty SKU is
// still counted, at zero cost.
type PurchaseItem struct {
	SKU       string  `json:"sku"`
	SalePrice float64 `json:"sale_price"`
	Quantity  int     `json:"quantity" validate:"gte=0"`
	// Discount is a percentage in [0, 100]. Absent means no discount.
	Discount float64 `json:"discount,omitempty" validate:"gte=0,lte=100"`
}

// DiscountPercent returns the discount, treating NaN as absent.
func (i PurchaseItem) DiscountPercent() float64 {
	return orZero(i.Discount)
}

// PurchaseRecord is a receipt attributed to one seller. Records whose
// SellerID names no known seller are skipped by the analysis.
type PurchaseRecord struct {
	ReceiptID  string `json:"receipt_id,omitempty"`
	Date       string `json:"date,omitempty"`
	SellerID   string `json:"seller_id"`
	CustomerID string `json:"customer_id,omitempty"`
	// TotalAmount is the gross receipt revenue as issued. It may include
	// amounts not modeled per item, so it is never recomputed from Items.
	TotalAmount   float64        `json:"total_amount,omitempty"`
	TotalDiscount float64        `json:"total_discount,omitempty"`
	Items         []PurchaseItem `json:"items" validate:"dive"`
}

// Amount returns TotalAmount, treating NaN as absent.
func (r PurchaseRecord) Amount() float64 {
	return orZero(r.TotalAmount)
}

// Dataset bundles the three collections one analysis runs over.
type Dataset struct {
	Sellers         []Seller         `json:"sellers" validate:"dive"`
	Products        []Product        `json:"products" validate:"dive"`
	PurchaseRecords []PurchaseRecord `json:"purchase_records" validate:"dive"`
}

func orZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
