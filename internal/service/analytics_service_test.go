package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/invman/internal/repository"
	"github.com/jafarshop/invman/pkg/errors"
)

func newTestAnalytics(t *testing.T) (*AnalyticsService, *InventoryService, *repository.Repositories) {
	t.Helper()
	repos, _ := newTestRepos(t)

	inventory := NewInventoryService(repos, zap.NewNop())
	inventory.now = func() time.Time {
		return time.Date(2024, 3, 10, 14, 30, 5, 0, time.UTC)
	}

	analytics := NewAnalyticsService(repos, zap.NewNop())
	analytics.now = func() time.Time {
		return time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	}
	return analytics, inventory, repos
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestTrackPerformanceEmptyLedger(t *testing.T) {
	analytics, _, _ := newTestAnalytics(t)

	_, err := analytics.TrackPerformance(context.Background(), day(2024, 3, 1), day(2024, 3, 31))
	require.Error(t, err)
	_, ok := err.(*errors.ErrEmptyLedger)
	assert.True(t, ok, "want *errors.ErrEmptyLedger, got %T", err)
}

func TestTrackPerformanceSumsOrdersAndRefunds(t *testing.T) {
	analytics, inventory, repos := newTestAnalytics(t)
	ctx := context.Background()

	id, err := inventory.AddProduct(ctx, caseProductInput())
	require.NoError(t, err)

	_, err = inventory.PlaceOrder(ctx, id, PlaceOrderInput{
		Model:       "iPhone 15",
		Color:       "Black",
		Quantity:    5,
		ShippingFee: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	_, err = inventory.RefundOrder(ctx, id, RefundOrderInput{
		Model:       "iPhone 15",
		Color:       "Black",
		Quantity:    5,
		ShippingFee: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	snapshot, err := analytics.TrackPerformance(ctx, day(2024, 3, 1), day(2024, 3, 31))
	require.NoError(t, err)

	// Order total 53 plus the refund's shipping-fee-only total of 3.
	// Refund totals are added, not subtracted; the books have always
	// been kept this way.
	assert.Equal(t, "56", snapshot.NetProfit.String())

	snapshots, err := repos.Performance.List(ctx)
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "56", snapshots[0].NetProfit.String())
}

func TestTrackPerformanceNoRecordsInRange(t *testing.T) {
	analytics, inventory, _ := newTestAnalytics(t)
	ctx := context.Background()

	id, err := inventory.AddProduct(ctx, caseProductInput())
	require.NoError(t, err)
	_, err = inventory.PlaceOrder(ctx, id, PlaceOrderInput{
		Model:    "iPhone 15",
		Color:    "Black",
		Quantity: 1,
	})
	require.NoError(t, err)

	// Records exist but none in range: success with zero profit.
	snapshot, err := analytics.TrackPerformance(ctx, day(2023, 1, 1), day(2023, 1, 31))
	require.NoError(t, err)
	assert.True(t, snapshot.NetProfit.IsZero())
}

func TestTrackPerformanceEndDateInclusive(t *testing.T) {
	analytics, inventory, _ := newTestAnalytics(t)
	ctx := context.Background()

	id, err := inventory.AddProduct(ctx, caseProductInput())
	require.NoError(t, err)

	// Placed at 14:30 on March 10th.
	_, err = inventory.PlaceOrder(ctx, id, PlaceOrderInput{
		Model:       "iPhone 15",
		Color:       "Black",
		Quantity:    5,
		ShippingFee: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	// The end date covers its whole calendar day.
	snapshot, err := analytics.TrackPerformance(ctx, day(2024, 3, 1), day(2024, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, "53", snapshot.NetProfit.String())

	// The day before excludes it.
	snapshot, err = analytics.TrackPerformance(ctx, day(2024, 3, 1), day(2024, 3, 9))
	require.NoError(t, err)
	assert.True(t, snapshot.NetProfit.IsZero())
}

func TestBestWorstSellers(t *testing.T) {
	analytics, inventory, _ := newTestAnalytics(t)
	ctx := context.Background()

	id, err := inventory.AddProduct(ctx, caseProductInput())
	require.NoError(t, err)

	charger, err := inventory.AddProduct(ctx, AddProductInput{
		Name:     "Fast Charger",
		Category: "Chargers",
		Models: map[string]ModelInput{
			"USB-C 30W": {
				Price:  decimal.NewFromInt(25),
				Colors: map[string]int{"White": 12, "Black": 12},
			},
		},
	})
	require.NoError(t, err)

	_, err = inventory.PlaceOrder(ctx, id, PlaceOrderInput{Model: "iPhone 15", Color: "Black", Quantity: 6})
	require.NoError(t, err)
	_, err = inventory.PlaceOrder(ctx, id, PlaceOrderInput{Model: "iPhone 15", Color: "Clear", Quantity: 2})
	require.NoError(t, err)
	_, err = inventory.PlaceOrder(ctx, charger, PlaceOrderInput{Model: "USB-C 30W", Color: "White", Quantity: 4})
	require.NoError(t, err)

	report, err := analytics.BestWorstSellers(ctx, 3)
	require.NoError(t, err)

	require.Len(t, report.Best, 3)
	assert.Equal(t, SellerEntry{Product: "Slim Case", Model: "iPhone 15", Color: "Black", UnitsSold: 6}, report.Best[0])
	assert.Equal(t, SellerEntry{Product: "Fast Charger", Model: "USB-C 30W", Color: "White", UnitsSold: 4}, report.Best[1])
	assert.Equal(t, SellerEntry{Product: "Slim Case", Model: "iPhone 15", Color: "Clear", UnitsSold: 2}, report.Best[2])

	require.Len(t, report.Worst, 3)
	// The charger's unsold black variant is the worst seller.
	assert.Equal(t, SellerEntry{Product: "Fast Charger", Model: "USB-C 30W", Color: "Black", UnitsSold: 0}, report.Worst[0])
}

func TestBestWorstSellersFewerThanN(t *testing.T) {
	analytics, inventory, _ := newTestAnalytics(t)
	ctx := context.Background()

	_, err := inventory.AddProduct(ctx, AddProductInput{
		Name:     "Car Mount",
		Category: "Mounts",
		Models: map[string]ModelInput{
			"Universal": {
				Price:  decimal.NewFromInt(15),
				Colors: map[string]int{"Black": 5},
			},
		},
	})
	require.NoError(t, err)

	report, err := analytics.BestWorstSellers(ctx, 3)
	require.NoError(t, err)

	// A single triple shows up in both lists without erroring.
	require.Len(t, report.Best, 1)
	require.Len(t, report.Worst, 1)
	assert.Equal(t, report.Best[0], report.Worst[0])
}

func TestBestWorstSellersDefaultsN(t *testing.T) {
	analytics, inventory, _ := newTestAnalytics(t)
	ctx := context.Background()

	_, err := inventory.AddProduct(ctx, caseProductInput())
	require.NoError(t, err)

	report, err := analytics.BestWorstSellers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, report.Best, 2)
	assert.Len(t, report.Worst, 2)
}
