package analysis_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/okian/salesrank/internal/domain/analysis"
	"github.com/okian/salesrank/internal/domain/model"
	"github.com/okian/salesrank/internal/domain/strategy"
	"github.com/okian/salesrank/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func item(sku string, price float64, qty int) model.PurchaseItem {
	return model.PurchaseItem{SKU: sku, SalePrice: price, Quantity: qty}
}

func sale(sellerID string, total float64, items ...model.PurchaseItem) model.PurchaseRecord {
	return model.PurchaseRecord{SellerID: sellerID, TotalAmount: total, Items: items}
}

// fixture yields profits 400, 1000, 600 and 800 in seller input order.
func fixture() *model.Dataset {
	return &model.Dataset{
		Sellers: []model.Seller{
			{ID: "seller_1", FirstName: "Alexey", LastName: "Petrov"},
			{ID: "seller_2", FirstName: "Ivan", LastName: "Smirnov"},
			{ID: "seller_3", FirstName: "Maria", LastName: "Ivanova"},
			{ID: "seller_4", FirstName: "Elena", LastName: "Sokolova"},
		},
		Products: []model.Product{
			{SKU: "SKU_001", PurchasePrice: 10},
			{SKU: "SKU_002", PurchasePrice: 20},
		},
		PurchaseRecords: []model.PurchaseRecord{
			sale("seller_1", 410, item("SKU_001", 410, 1)),
			sale("seller_2", 1010, item("SKU_001", 1010, 1)),
			sale("seller_3", 620, item("SKU_002", 620, 1)),
			sale("seller_4", 810, item("SKU_001", 810, 1)),
		},
	}
}

func sellerIDs(rows []types.ReportRow) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.SellerID
	}
	return ids
}

func TestAnalyze_Validation(t *testing.T) {
	Convey("Given the default strategies", t, func() {
		opts := analysis.DefaultOptions()

		Convey("When the dataset is nil", func() {
			rows, err := analysis.Analyze(nil, opts)

			Convey("Then it should fail with a missing input error", func() {
				So(errors.Is(err, analysis.ErrMissingInput), ShouldBeTrue)
				So(rows, ShouldBeNil)
				So(analysis.Kind(err), ShouldEqual, "missing_input")
			})
		})

		for _, tc := range []struct {
			collection string
			clear      func(*model.Dataset)
		}{
			{analysis.CollectionSellers, func(d *model.Dataset) { d.Sellers = nil }},
			{analysis.CollectionProducts, func(d *model.Dataset) { d.Products = []model.Product{} }},
			{analysis.CollectionPurchaseRecords, func(d *model.Dataset) { d.PurchaseRecords = []model.PurchaseRecord{} }},
		} {
			Convey(fmt.Sprintf("When %s is empty", tc.collection), func() {
				data := fixture()
				tc.clear(data)
				rows, err := analysis.Analyze(data, opts)

				Convey("Then it should name the offending collection", func() {
					So(rows, ShouldBeNil)
					So(errors.Is(err, analysis.ErrInvalidCollection), ShouldBeTrue)
					var ce *analysis.CollectionError
					So(errors.As(err, &ce), ShouldBeTrue)
					So(ce.Collection, ShouldEqual, tc.collection)
					So(err.Error(), ShouldContainSubstring, tc.collection)
					So(analysis.Kind(err), ShouldEqual, "invalid_collection")
				})
			})
		}

		Convey("When sellers and products are both empty", func() {
			data := fixture()
			data.Sellers = nil
			data.Products = nil
			_, err := analysis.Analyze(data, opts)

			Convey("Then sellers should be reported first", func() {
				var ce *analysis.CollectionError
				So(errors.As(err, &ce), ShouldBeTrue)
				So(ce.Collection, ShouldEqual, analysis.CollectionSellers)
			})
		})

		Convey("When purchase_records is empty and the strategies are spies", func() {
			calls := 0
			spy := analysis.Options{
				CalculateRevenue: func(item model.PurchaseItem, p *model.Product) float64 {
					calls++
					return strategy.SimpleRevenue(item, p)
				},
				CalculateBonus: func(rank, total int, s types.SellerSummary) float64 {
					calls++
					return 0
				},
			}
			data := fixture()
			data.PurchaseRecords = nil
			_, err := analysis.Analyze(data, spy)

			Convey("Then no strategy should be invoked", func() {
				So(errors.Is(err, analysis.ErrInvalidCollection), ShouldBeTrue)
				So(calls, ShouldEqual, 0)
			})
		})

		Convey("When both strategies are missing", func() {
			_, err := analysis.Analyze(fixture(), analysis.Options{})

			Convey("Then the error should list both options", func() {
				So(errors.Is(err, analysis.ErrMissingStrategy), ShouldBeTrue)
				var se *analysis.StrategyError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.Missing, ShouldResemble, []string{"calculateRevenue", "calculateBonus"})
				So(analysis.Kind(err), ShouldEqual, "missing_strategy")
			})
		})

		Convey("When only the bonus strategy is missing", func() {
			_, err := analysis.Analyze(fixture(), analysis.Options{CalculateRevenue: strategy.SimpleRevenue})

			Convey("Then only calculateBonus should be listed", func() {
				var se *analysis.StrategyError
				So(errors.As(err, &se), ShouldBeTrue)
				So(se.Missing, ShouldResemble, []string{"calculateBonus"})
			})
		})
	})
}

func TestAnalyze_Ranking(t *testing.T) {
	Convey("Given four sellers with profits 400, 1000, 600 and 800", t, func() {
		rows, err := analysis.Analyze(fixture(), analysis.DefaultOptions())
		So(err, ShouldBeNil)

		Convey("Then there should be one row per seller", func() {
			So(len(rows), ShouldEqual, 4)
		})

		Convey("Then rows should be ordered by profit descending", func() {
			So(sellerIDs(rows), ShouldResemble, []string{"seller_2", "seller_4", "seller_3", "seller_1"})
			for i := 1; i < len(rows); i++ {
				So(rows[i-1].Profit, ShouldBeGreaterThanOrEqualTo, rows[i].Profit)
			}
		})

		Convey("Then bonuses should follow the rank tiers", func() {
			bonuses := []float64{rows[0].Bonus, rows[1].Bonus, rows[2].Bonus, rows[3].Bonus}
			So(bonuses, ShouldResemble, []float64{150, 80, 60, 0})
		})

		Convey("Then names should join first and last name", func() {
			So(rows[0].Name, ShouldEqual, "Ivan Smirnov")
		})
	})

	Convey("Given exactly two sellers with profits 500 and 300", t, func() {
		data := &model.Dataset{
			Sellers: []model.Seller{
				{ID: "a", FirstName: "Anna", LastName: "Lee"},
				{ID: "b", FirstName: "Boris", LastName: "Kim"},
			},
			Products: []model.Product{{SKU: "X", PurchasePrice: 0}},
			PurchaseRecords: []model.PurchaseRecord{
				sale("b", 300, item("X", 300, 1)),
				sale("a", 500, item("X", 500, 1)),
			},
		}
		rows, err := analysis.Analyze(data, analysis.DefaultOptions())
		So(err, ShouldBeNil)

		Convey("Then the last rank should get the runner-up rate, not zero", func() {
			So(sellerIDs(rows), ShouldResemble, []string{"a", "b"})
			So(rows[0].Bonus, ShouldEqual, 75.0)
			So(rows[1].Bonus, ShouldEqual, 30.0)
		})
	})

	Convey("Given sellers with equal profit", t, func() {
		data := &model.Dataset{
			Sellers: []model.Seller{
				{ID: "first", FirstName: "A", LastName: "A"},
				{ID: "second", FirstName: "B", LastName: "B"},
				{ID: "third", FirstName: "C", LastName: "C"},
			},
			Products: []model.Product{{SKU: "X", PurchasePrice: 1}},
			PurchaseRecords: []model.PurchaseRecord{
				sale("third", 10, item("X", 10, 1)),
				sale("second", 5, item("X", 5, 1)),
				sale("first", 5, item("X", 5, 1)),
			},
		}
		rows, err := analysis.Analyze(data, analysis.DefaultOptions())
		So(err, ShouldBeNil)

		Convey("Then ties should keep seller input order", func() {
			So(sellerIDs(rows), ShouldResemble, []string{"third", "first", "second"})
		})
	})

	Convey("Given a seller without any purchase records", t, func() {
		data := fixture()
		data.Sellers = append(data.Sellers, model.Seller{ID: "idle", FirstName: "No", LastName: "Sales"})
		rows, err := analysis.Analyze(data, analysis.DefaultOptions())
		So(err, ShouldBeNil)

		Convey("Then it should still get a zeroed row", func() {
			So(len(rows), ShouldEqual, 5)
			last := rows[4]
			So(last.SellerID, ShouldEqual, "idle")
			So(last.SalesCount, ShouldEqual, 0)
			So(last.Profit, ShouldEqual, 0.0)
			So(last.TopProducts, ShouldNotBeNil)
			So(len(last.TopProducts), ShouldEqual, 0)
		})
	})
}

func TestAnalyze_Aggregation(t *testing.T) {
	Convey("Given the fixture dataset", t, func() {
		data := fixture()
		opts := analysis.DefaultOptions()

		Convey("When a record references an unknown seller", func() {
			before, err := analysis.Analyze(fixture(), opts)
			So(err, ShouldBeNil)

			data.PurchaseRecords = append(data.PurchaseRecords, sale("ghost", 9999, item("SKU_001", 9999, 3)))
			res, err := analysis.Run(data, opts)
			So(err, ShouldBeNil)

			Convey("Then it should be skipped without side effects", func() {
				So(res.Rows, ShouldResemble, before)
				So(res.Stats.RecordsSkipped, ShouldEqual, 1)
				So(res.Stats.RecordsFolded, ShouldEqual, 4)
			})

			Convey("Then sales counts should only include known sellers", func() {
				total := 0
				for _, r := range res.Rows {
					total += r.SalesCount
				}
				So(total, ShouldEqual, 4)
			})
		})

		Convey("When an item references an unknown sku", func() {
			data.PurchaseRecords = append(data.PurchaseRecords, sale("seller_1", 100, item("SKU_404", 50, 2)))
			res, err := analysis.Run(data, opts)
			So(err, ShouldBeNil)

			Convey("Then its full revenue should count as profit", func() {
				row := res.Rows[len(res.Rows)-1]
				So(row.SellerID, ShouldEqual, "seller_1")
				So(row.Profit, ShouldEqual, 500.0)
				So(row.SalesCount, ShouldEqual, 2)
				So(res.Stats.UnknownSKUItems, ShouldEqual, 1)
			})

			Convey("Then its quantity should still be counted", func() {
				row := res.Rows[len(res.Rows)-1]
				So(row.TopProducts, ShouldContain, types.TopProduct{SKU: "SKU_404", Quantity: 2})
			})
		})

		Convey("When an item carries a discount", func() {
			data.PurchaseRecords = append(data.PurchaseRecords, sale("seller_1", 75, model.PurchaseItem{
				SKU: "SKU_001", SalePrice: 100, Quantity: 1, Discount: 25,
			}))
			rows, err := analysis.Analyze(data, opts)
			So(err, ShouldBeNil)

			Convey("Then profit should use the discounted revenue", func() {
				row := rows[len(rows)-1]
				So(row.SellerID, ShouldEqual, "seller_1")
				So(row.Profit, ShouldEqual, 465.0)
			})
		})

		Convey("When a record has no total amount", func() {
			data.PurchaseRecords[0].TotalAmount = 0
			rows, err := analysis.Analyze(data, opts)
			So(err, ShouldBeNil)

			Convey("Then it should add no revenue but keep its profit", func() {
				row := rows[len(rows)-1]
				So(row.SellerID, ShouldEqual, "seller_1")
				So(row.Revenue, ShouldEqual, 0.0)
				So(row.Profit, ShouldEqual, 400.0)
				So(row.SalesCount, ShouldEqual, 1)
			})
		})

		Convey("When total amount differs from the item revenue", func() {
			data.PurchaseRecords[0].TotalAmount = 432.1
			rows, err := analysis.Analyze(data, opts)
			So(err, ShouldBeNil)

			Convey("Then revenue should come from the record total", func() {
				row := rows[len(rows)-1]
				So(row.Revenue, ShouldEqual, 432.1)
				So(row.Profit, ShouldEqual, 400.0)
			})
		})

		Convey("When a custom revenue strategy is injected", func() {
			var seen []*model.Product
			opts.CalculateRevenue = func(item model.PurchaseItem, p *model.Product) float64 {
				seen = append(seen, p)
				return item.SalePrice * float64(item.Quantity)
			}
			data.PurchaseRecords = append(data.PurchaseRecords, sale("seller_1", 100, model.PurchaseItem{
				SKU: "SKU_404", SalePrice: 100, Quantity: 1, Discount: 50,
			}))
			rows, err := analysis.Analyze(data, opts)
			So(err, ShouldBeNil)

			Convey("Then it should drive the profit", func() {
				row := rows[len(rows)-1]
				So(row.Profit, ShouldEqual, 500.0)
			})

			Convey("Then it should receive the product card or nil", func() {
				So(len(seen), ShouldEqual, 5)
				So(seen[0].SKU, ShouldEqual, "SKU_001")
				So(seen[4], ShouldBeNil)
			})
		})

		Convey("When a custom bonus strategy is injected", func() {
			type call struct {
				rank, total int
				summary     types.SellerSummary
			}
			var calls []call
			opts.CalculateBonus = func(rank, total int, s types.SellerSummary) float64 {
				calls = append(calls, call{rank, total, s})
				return float64(rank) + 0.125
			}
			rows, err := analysis.Analyze(data, opts)
			So(err, ShouldBeNil)

			Convey("Then it should be called once per rank with the seller summary", func() {
				So(len(calls), ShouldEqual, 4)
				So(calls[0].rank, ShouldEqual, 0)
				So(calls[0].total, ShouldEqual, 4)
				So(calls[0].summary, ShouldResemble, types.SellerSummary{
					SellerID: "seller_2", Name: "Ivan Smirnov", Revenue: 1010, Profit: 1000, SalesCount: 1,
				})
				So(calls[3].summary.SellerID, ShouldEqual, "seller_1")
			})

			Convey("Then its result should be rounded half away from zero", func() {
				So(rows[0].Bonus, ShouldEqual, 0.13)
				So(rows[3].Bonus, ShouldEqual, 3.13)
			})
		})
	})
}

func TestAnalyze_TopProducts(t *testing.T) {
	Convey("Given a seller who sold twelve different skus", t, func() {
		data := &model.Dataset{
			Sellers:  []model.Seller{{ID: "s", FirstName: "Top", LastName: "Seller"}},
			Products: []model.Product{{SKU: "SKU_00", PurchasePrice: 1}},
		}
		var items []model.PurchaseItem
		// quantities: SKU_00..SKU_11 -> 1, 2, ..., with SKU_05 and SKU_07 tied at 20
		for i := 0; i < 12; i++ {
			qty := i + 1
			if i == 5 || i == 7 {
				qty = 20
			}
			items = append(items, item(fmt.Sprintf("SKU_%02d", i), 1, qty))
		}
		data.PurchaseRecords = []model.PurchaseRecord{
			sale("s", 10, items[:6]...),
			sale("s", 10, items[6:]...),
			sale("s", 10, item("SKU_00", 1, 4)),
		}

		rows, err := analysis.Analyze(data, analysis.DefaultOptions())
		So(err, ShouldBeNil)
		top := rows[0].TopProducts

		Convey("Then only ten products should be kept", func() {
			So(len(top), ShouldEqual, 10)
		})

		Convey("Then they should be ordered by quantity with first-seen tie-break", func() {
			So(top[0], ShouldResemble, types.TopProduct{SKU: "SKU_05", Quantity: 20})
			So(top[1], ShouldResemble, types.TopProduct{SKU: "SKU_07", Quantity: 20})
			So(top[2], ShouldResemble, types.TopProduct{SKU: "SKU_11", Quantity: 12})
			for i := 1; i < len(top); i++ {
				So(top[i-1].Quantity, ShouldBeGreaterThanOrEqualTo, top[i].Quantity)
			}
		})

		Convey("Then quantities across records should accumulate", func() {
			So(top, ShouldContain, types.TopProduct{SKU: "SKU_00", Quantity: 5})
		})

		Convey("Then the smallest quantities should be dropped", func() {
			So(top, ShouldNotContain, types.TopProduct{SKU: "SKU_01", Quantity: 2})
			So(top, ShouldNotContain, types.TopProduct{SKU: "SKU_02", Quantity: 3})
		})
	})
}

func TestAnalyze_Idempotence(t *testing.T) {
	Convey("Given the same dataset analyzed twice", t, func() {
		data := fixture()
		data.PurchaseRecords = append(data.PurchaseRecords,
			sale("seller_3", 33.33, item("SKU_002", 11.11, 3), item("SKU_404", 7.7, 2)),
			sale("seller_1", 19.99, model.PurchaseItem{SKU: "SKU_001", SalePrice: 19.99, Quantity: 1, Discount: 15}),
		)

		first, err := analysis.Analyze(data, analysis.DefaultOptions())
		So(err, ShouldBeNil)
		second, err := analysis.Analyze(data, analysis.DefaultOptions())
		So(err, ShouldBeNil)

		Convey("Then the encoded reports should be identical", func() {
			a, err := json.Marshal(first)
			So(err, ShouldBeNil)
			b, err := json.Marshal(second)
			So(err, ShouldBeNil)
			So(string(a), ShouldEqual, string(b))
		})

		Convey("Then the input should be left untouched", func() {
			So(data.PurchaseRecords[0].TotalAmount, ShouldEqual, 410.0)
			So(len(data.Sellers), ShouldEqual, 4)
		})
	})
}
