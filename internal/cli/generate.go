package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/okian/salesrank/internal/adapters/dataset"
	"github.com/okian/salesrank/internal/datagen"
	"github.com/okian/salesrank/internal/domain/model"
	"github.com/okian/salesrank/pkg/logger"
)

type generatorFlags struct {
	seed      uint64
	sellers   int
	products  int
	records   int
	maxItems  int
	customers int
	start     time.Time
}

func (g *generatorFlags) register(fs *flag.FlagSet) {
	fs.Uint64Var(&g.seed, "seed", 1, "random seed")
	fs.IntVar(&g.sellers, "sellers", 5, "number of sellers")
	fs.IntVar(&g.products, "products", 20, "number of products")
	fs.IntVar(&g.records, "records", 200, "number of purchase records")
	fs.IntVar(&g.maxItems, "max-items", 4, "maximum lines per receipt")
	fs.IntVar(&g.customers, "customers", 50, "size of the customer pool")
	g.start = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	fs.Func("start", "first receipt date, YYYY-MM-DD (default 2024-01-01)", func(v string) error {
		t, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", v, err)
		}
		g.start = t
		return nil
	})
}

func (g *generatorFlags) generate(ctx context.Context) (*model.Dataset, error) {
	ds, err := datagen.New(
		datagen.WithSeed(g.seed),
		datagen.WithSellers(g.sellers),
		datagen.WithProducts(g.products),
		datagen.WithRecords(g.records),
		datagen.WithMaxItems(g.maxItems),
		datagen.WithCustomers(g.customers),
		datagen.WithStartDate(g.start),
	).Generate(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate dataset: %w", err)
	}
	logger.Get().Info(ctx, "generated dataset",
		logger.Any("seed", g.seed),
		logger.Int("sellers", len(ds.Sellers)),
		logger.Int("products", len(ds.Products)),
		logger.Int("records", len(ds.PurchaseRecords)),
	)
	return ds, nil
}

func runGenerate(ctx context.Context, env Env, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(env.Stdout)
	out := fs.String("out", "", "file to write the dataset to")
	var gen generatorFlags
	gen.register(fs)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if *out == "" {
		return fmt.Errorf("%w: -out is required", ErrUsage)
	}

	ds, err := gen.generate(ctx)
	if err != nil {
		return err
	}
	if err := dataset.Save(*out, ds); err != nil {
		return err
	}
	logger.Get().Info(ctx, "dataset written", logger.String("path", *out))
	return nil
}
