// Package types contains the report shapes shared by the analysis, the
// service layer and the HTTP API.
package types

// SellerSummary is the snapshot of a seller's totals handed to bonus
// strategies. Values are unrounded.
type SellerSummary struct {
	SellerID   string  `json:"seller_id"`
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
	Profit     float64 `json:"profit"`
	SalesCount int     `json:"sales_count"`
}

// TopProduct is a sku and the units a seller sold of it.
type TopProduct struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// ReportRow is one seller's line in the final report.
type ReportRow struct {
	SellerID    string       `json:"seller_id"`
	Name        string       `json:"name"`
	Revenue     float64      `json:"revenue"`
	Profit      float64      `json:"profit"`
	SalesCount  int          `json:"sales_count"`
	TopProducts []TopProduct `json:"top_products"`
	Bonus       float64      `json:"bonus"`
}
