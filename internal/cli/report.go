package cli

import (
	"context"
	"flag"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/okian/salesrank/internal/adapters/dataset"
	service "github.com/okian/salesrank/internal/app"
	"github.com/okian/salesrank/internal/config"
	"github.com/okian/salesrank/internal/domain/types"
	"github.com/okian/salesrank/pkg/logger"
)

// generatedSource names the report of a generated dataset.
const generatedSource = "generated"

// fileReport is the report of one dataset.
type fileReport struct {
	Source string            `json:"source"`
	Report []types.ReportRow `json:"report"`
}

func runReport(ctx context.Context, env Env, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(env.Stdout)
	format := fs.String("format", env.Config.OutputFormat, "output format: json or table")
	generate := fs.Bool("generate", false, "analyze a generated dataset instead of files")
	parallel := fs.Int("parallel", runtime.NumCPU(), "number of files analyzed at once")
	var gen generatorFlags
	gen.register(fs)

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if *format != config.OutputJSON && *format != config.OutputTable {
		return fmt.Errorf("%w: unknown format %q", ErrUsage, *format)
	}
	files := fs.Args()
	if !*generate && len(files) == 0 {
		return fmt.Errorf("%w: at least one dataset file is required", ErrUsage)
	}

	svc := service.New(
		service.WithTierRates(env.Config.TierRates()),
		service.WithLogger(logger.Named("report")),
	)

	var reports []fileReport
	if *generate {
		ds, err := gen.generate(ctx)
		if err != nil {
			return err
		}
		rows, err := svc.Analyze(ctx, ds)
		if err != nil {
			return fmt.Errorf("%s: %w", generatedSource, err)
		}
		reports = []fileReport{{Source: generatedSource, Report: rows}}
	} else {
		var err error
		if reports, err = analyzeFiles(ctx, svc, files, *parallel); err != nil {
			return err
		}
	}

	if *format == config.OutputTable {
		return renderTable(env.Stdout, reports)
	}
	return renderJSON(env.Stdout, reports)
}

// analyzeFiles loads and analyzes every file, at most limit at a time.
// Reports keep the order of files. The first failure cancels the rest.
func analyzeFiles(ctx context.Context, svc *service.Service, files []string, limit int) ([]fileReport, error) {
	reports := make([]fileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range files {
		g.Go(func() error {
			ds, err := dataset.Load(gctx, path)
			if err != nil {
				return err
			}
			rows, err := svc.Analyze(gctx, ds)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			reports[i] = fileReport{Source: path, Report: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
