package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/domain"
	"github.com/jafarshop/invman/internal/repository"
	"github.com/jafarshop/invman/pkg/errors"
)

// AnalyticsService derives reports from the ledger and catalog. It owns
// no state and never mutates either store (the performance log it
// appends to is pure output).
type AnalyticsService struct {
	repos  *repository.Repositories
	logger *zap.Logger
	now    func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repos *repository.Repositories, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		repos:  repos,
		logger: logger,
		now:    time.Now,
	}
}

// TrackPerformance sums ledger totals over [start, end+1day) and
// appends a performance snapshot. The end date is inclusive of its
// whole calendar day. Refund totals are stored as non-negative
// shipping-fee-only amounts and are added as-is, not subtracted; the
// arithmetic reproduces what the books have always shown.
func (s *AnalyticsService) TrackPerformance(ctx context.Context, start, end time.Time) (*domain.PerformanceSnapshot, error) {
	records, err := s.repos.Ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &errors.ErrEmptyLedger{}
	}

	rangeEnd := end.AddDate(0, 0, 1)
	netProfit := decimal.Zero
	for _, record := range records {
		if record.Date.Before(start) || !record.Date.Before(rangeEnd) {
			continue
		}
		switch record.Status {
		case domain.OrderStatusOrdered, domain.OrderStatusRefunded:
			netProfit = netProfit.Add(record.TotalPrice)
		}
	}

	snapshot := &domain.PerformanceSnapshot{
		StartDate: start,
		EndDate:   end,
		NetProfit: netProfit,
		TrackedOn: s.now(),
	}
	if err := s.repos.Performance.Append(ctx, snapshot); err != nil {
		return nil, err
	}

	s.logger.Info("Performance tracked",
		zap.String("start", start.Format(domain.PerformanceDateFormat)),
		zap.String("end", end.Format(domain.PerformanceDateFormat)),
		zap.String("net_profit", netProfit.String()),
	)
	return snapshot, nil
}

// BestWorstSellers flattens every (product, model, color) triple with
// its cumulative units sold and returns the n largest and n smallest.
// With fewer than n triples, both lists hold everything. Ordering is
// stable: catalog order, then model and color names.
func (s *AnalyticsService) BestWorstSellers(ctx context.Context, n int) (*SellerReport, error) {
	if n <= 0 {
		n = 3
	}

	products, err := s.repos.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	var entries []SellerEntry
	for _, product := range products {
		for _, modelName := range product.ModelNames() {
			model := product.Models[modelName]
			for _, color := range model.ColorNames() {
				entries = append(entries, SellerEntry{
					Product:   product.Name,
					Model:     modelName,
					Color:     color,
					UnitsSold: model.UnitsSoldByColor[color],
				})
			}
		}
	}

	best := make([]SellerEntry, len(entries))
	copy(best, entries)
	sort.SliceStable(best, func(i, j int) bool {
		return best[i].UnitsSold > best[j].UnitsSold
	})

	worst := make([]SellerEntry, len(entries))
	copy(worst, entries)
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].UnitsSold < worst[j].UnitsSold
	})

	if len(best) > n {
		best = best[:n]
	}
	if len(worst) > n {
		worst = worst[:n]
	}

	return &SellerReport{Best: best, Worst: worst}, nil
}
