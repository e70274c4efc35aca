// Package service provides the application service that runs sales
// analyses for the HTTP API and the CLI.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/salesrank/internal/domain/analysis"
	"github.com/okian/salesrank/internal/domain/model"
	"github.com/okian/salesrank/internal/domain/strategy"
	"github.com/okian/salesrank/internal/domain/types"
	"github.com/okian/salesrank/pkg/logger"
	"github.com/okian/salesrank/pkg/metrics"
)

// Service runs analyses with a fixed pair of strategies and keeps running
// counters about them. It is safe for concurrent use.
type Service struct {
	mu sync.RWMutex

	opts    analysis.Options
	rates   strategy.TierRates
	logger  logger.Logger
	metrics *metrics.Manager
	// tiered is false once a custom bonus strategy replaces the rates.
	tiered bool

	// Counters
	analyses     int
	failures     int
	lastSellers  int
	lastFolded   int
	lastSkipped  int
	lastDuration time.Duration
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics manager. Defaults to metrics.Default().
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithRevenueStrategy replaces the per-item revenue calculation.
func WithRevenueStrategy(fn strategy.RevenueFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.opts.CalculateRevenue = fn
		}
	}
}

// WithBonusStrategy replaces the rank bonus calculation.
func WithBonusStrategy(fn strategy.BonusFunc) Option {
	return func(s *Service) {
		if fn != nil {
			s.opts.CalculateBonus = fn
			s.tiered = false
		}
	}
}

// WithTierRates pays bonuses from the tiered policy with the given rates.
func WithTierRates(r strategy.TierRates) Option {
	return func(s *Service) {
		s.rates = r
		s.opts.CalculateBonus = strategy.NewTieredBonus(r)
		s.tiered = true
	}
}

// New constructs a Service using SimpleRevenue and BonusByProfit unless
// options say otherwise.
func New(opts ...Option) *Service {
	s := &Service{
		opts:    analysis.DefaultOptions(),
		rates:   strategy.DefaultTierRates(),
		metrics: metrics.Default(),
		tiered:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	return s.logger
}

// Analyze returns the report for ds, highest profit first.
func (s *Service) Analyze(ctx context.Context, ds *model.Dataset) ([]types.ReportRow, error) {
	res, err := s.Run(ctx, ds)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

// Run is Analyze that also returns fold statistics. Analysis errors are
// returned unwrapped so callers can match them with errors.Is and
// analysis.Kind.
func (s *Service) Run(ctx context.Context, ds *model.Dataset) (analysis.Result, error) {
	if err := ctx.Err(); err != nil {
		return analysis.Result{}, err
	}

	start := time.Now()
	res, err := analysis.Run(ds, s.opts)
	elapsed := time.Since(start)

	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.log()

	if err != nil {
		s.failures++
		kind := analysis.Kind(err)
		s.metrics.RecordAnalysisError(kind)
		l.Warn(ctx, "analysis rejected",
			logger.String("kind", kind),
			logger.Error(err),
		)
		return analysis.Result{}, err
	}

	s.analyses++
	s.lastSellers = res.Stats.Sellers
	s.lastFolded = res.Stats.RecordsFolded
	s.lastSkipped = res.Stats.RecordsSkipped
	s.lastDuration = elapsed

	s.metrics.RecordAnalysis(metrics.Analysis{
		DurationMs:      float64(elapsed.Microseconds()) / 1000,
		Sellers:         res.Stats.Sellers,
		RecordsFolded:   res.Stats.RecordsFolded,
		RecordsSkipped:  res.Stats.RecordsSkipped,
		UnknownSKUItems: res.Stats.UnknownSKUItems,
	})
	l.Info(ctx, "analysis completed",
		logger.Int("sellers", res.Stats.Sellers),
		logger.Int("records", res.Stats.RecordsFolded),
		logger.Int("skippedRecords", res.Stats.RecordsSkipped),
		logger.Int("unknownSkuItems", res.Stats.UnknownSKUItems),
		logger.Duration("duration", elapsed),
	)
	if res.Stats.RecordsSkipped > 0 {
		l.Debug(ctx, "purchase records referenced unknown sellers",
			logger.Int("count", res.Stats.RecordsSkipped),
		)
	}
	if s.tiered {
		for rank, row := range res.Rows {
			l.Debug(ctx, "seller ranked",
				logger.String("sellerId", row.SellerID),
				logger.Int("rank", rank),
				logger.String("tier", s.rates.Tier(rank, len(res.Rows))),
				logger.Float64("bonus", row.Bonus),
			)
		}
	}
	return res, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"analyses":           s.analyses,
		"failures":           s.failures,
		"lastSellers":        s.lastSellers,
		"lastRecordsFolded":  s.lastFolded,
		"lastRecordsSkipped": s.lastSkipped,
		"lastDurationMs":     float64(s.lastDuration.Microseconds()) / 1000,
		"bonusRates": map[string]float64{
			"leader":   s.rates.Leader,
			"runnerUp": s.rates.RunnerUp,
			"last":     s.rates.Last,
			"default":  s.rates.Default,
		},
	}
}
