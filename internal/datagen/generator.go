// Package datagen builds synthetic sales datasets. The same seed and
// options always produce the same dataset.
package datagen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/okian/salesrank/internal/domain/model"
)

// ErrInvalidParams is returned when a count or range option is out of bounds.
var ErrInvalidParams = errors.New("invalid generator params")

const (
	dateLayout = "2006-01-02"

	minPurchasePrice = 5.0
	maxPurchasePrice = 500.0
	// sale price = purchase price * [minMarkup, minMarkup+markupRange)
	minMarkup   = 1.2
	markupRange = 0.6
	maxQuantity = 5
)

// Discounts a line can get; zero is weighted to be the most common.
var discounts = []float64{0, 0, 0, 0, 5, 10, 15, 20, 25}

// Generator produces datasets.
type Generator struct {
	sellers   int
	products  int
	records   int
	maxItems  int
	customers int
	seed      uint64
	start     time.Time
	// period is the number of days receipts are spread over.
	period int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSellers sets the number of sellers.
func WithSellers(n int) Option { return func(g *Generator) { g.sellers = n } }

// WithProducts sets the number of product cards.
func WithProducts(n int) Option { return func(g *Generator) { g.products = n } }

// WithRecords sets the number of purchase records.
func WithRecords(n int) Option { return func(g *Generator) { g.records = n } }

// WithMaxItems bounds the number of lines per receipt.
func WithMaxItems(n int) Option { return func(g *Generator) { g.maxItems = n } }

// WithCustomers sets the size of the customer pool receipts draw from.
func WithCustomers(n int) Option { return func(g *Generator) { g.customers = n } }

// WithSeed sets the random seed.
func WithSeed(seed uint64) Option { return func(g *Generator) { g.seed = seed } }

// WithStartDate sets the first possible receipt date.
func WithStartDate(t time.Time) Option { return func(g *Generator) { g.start = t } }

// New constructs a Generator with small defaults.
func New(opts ...Option) *Generator {
	g := &Generator{
		sellers:   5,
		products:  20,
		records:   200,
		maxItems:  4,
		customers: 50,
		seed:      1,
		start:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		period:    365,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) validate() error {
	for _, p := range []struct {
		name string
		v    int
	}{
		{"sellers", g.sellers},
		{"products", g.products},
		{"records", g.records},
		{"max items", g.maxItems},
		{"customers", g.customers},
	} {
		if p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidParams, p.name, p.v)
		}
	}
	return nil
}

// Generate builds a dataset. It stops early when ctx is cancelled.
func (g *Generator) Generate(ctx context.Context) (*model.Dataset, error) {
	if err := g.validate(); err != nil {
		return nil, err
	}

	var seed [32]byte
	for i := 0; i < 8; i++ {
		seed[i] = byte(g.seed >> (8 * i))
	}
	src := rand.NewChaCha8(seed)
	rng := rand.New(src)

	ds := &model.Dataset{
		Sellers:         make([]model.Seller, g.sellers),
		Products:        make([]model.Product, g.products),
		PurchaseRecords: make([]model.PurchaseRecord, g.records),
	}
	for i := range ds.Sellers {
		ds.Sellers[i] = g.seller(rng, i)
	}
	for i := range ds.Products {
		ds.Products[i] = g.product(rng, i)
	}
	for i := range ds.PurchaseRecords {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled after %d records: %w", i, err)
		}
		rec, err := g.record(rng, src, ds)
		if err != nil {
			return nil, err
		}
		ds.PurchaseRecords[i] = rec
	}
	return ds, nil
}

func (g *Generator) seller(rng *rand.Rand, i int) model.Seller {
	return model.Seller{
		ID:        "seller_" + strconv.Itoa(i+1),
		FirstName: firstNames[rng.IntN(len(firstNames))],
		LastName:  lastNames[rng.IntN(len(lastNames))],
		StartDate: g.start.AddDate(0, 0, -rng.IntN(5*g.period)).Format(dateLayout),
		Position:  positions[rng.IntN(len(positions))],
	}
}

func (g *Generator) product(rng *rand.Rand, i int) model.Product {
	purchase := minPurchasePrice + rng.Float64()*(maxPurchasePrice-minPurchasePrice)
	sale := purchase * (minMarkup + rng.Float64()*markupRange)
	return model.Product{
		SKU:           fmt.Sprintf("SKU_%03d", i+1),
		PurchasePrice: cents(purchase),
		Name:          productNames[rng.IntN(len(productNames))],
		Category:      categories[rng.IntN(len(categories))],
		SalePrice:     cents(sale),
	}
}

func (g *Generator) record(rng *rand.Rand, src *rand.ChaCha8, ds *model.Dataset) (model.PurchaseRecord, error) {
	id, err := uuid.NewRandomFromReader(src)
	if err != nil {
		return model.PurchaseRecord{}, fmt.Errorf("receipt id: %w", err)
	}

	n := 1 + rng.IntN(g.maxItems)
	items := make([]model.PurchaseItem, n)
	gross, net := decimal.Zero, decimal.Zero
	for j := range items {
		p := ds.Products[rng.IntN(len(ds.Products))]
		item := model.PurchaseItem{
			SKU:       p.SKU,
			SalePrice: p.SalePrice,
			Quantity:  1 + rng.IntN(maxQuantity),
			Discount:  discounts[rng.IntN(len(discounts))],
		}
		items[j] = item

		line := decimal.NewFromFloat(item.SalePrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
		gross = gross.Add(line)
		net = net.Add(line.Mul(decimal.NewFromInt(100).Sub(decimal.NewFromFloat(item.Discount))).Div(decimal.NewFromInt(100)))
	}
	net = net.Round(2)

	return model.PurchaseRecord{
		ReceiptID:     "receipt_" + id.String(),
		Date:          g.start.AddDate(0, 0, rng.IntN(g.period)).Format(dateLayout),
		SellerID:      ds.Sellers[rng.IntN(len(ds.Sellers))].ID,
		CustomerID:    "customer_" + strconv.Itoa(1+rng.IntN(g.customers)),
		TotalAmount:   net.InexactFloat64(),
		TotalDiscount: gross.Sub(net).Round(2).InexactFloat64(),
		Items:         items,
	}, nil
}

func cents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
