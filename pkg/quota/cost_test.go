package quota

import (
	"context"
	"sync"
	"testing"
	"time"

	"vocabforge-be/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureAlerter struct {
	mu     sync.Mutex
	alerts []Alert
}

func (c *captureAlerter) CostAlert(_ context.Context, alert Alert) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, alert)
}

func (c *captureAlerter) kinds() []AlertKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	kinds := make([]AlertKind, 0, len(c.alerts))
	for _, a := range c.alerts {
		kinds = append(kinds, a.Kind)
	}
	return kinds
}

func TestRecord_ComputesCostFromPricingTable(t *testing.T) {
	ledger := NewCostLedger(logger.NewNopLogger(), DefaultThresholds(), nil)

	cost := ledger.Record(context.Background(), "llama3", 2000, 1000)

	// 2K prompt @ 0.0005 + 1K completion @ 0.0015
	assert.InDelta(t, 0.0025, cost, 1e-9)

	snap := ledger.Snapshot()
	assert.InDelta(t, 0.0025, snap.DailySpend, 1e-9)
	assert.Equal(t, 1, snap.Calls)
}

func TestRecord_UnknownModelUsesFallbackPricing(t *testing.T) {
	ledger := NewCostLedger(logger.NewNopLogger(), DefaultThresholds(), nil)

	cost := ledger.Record(context.Background(), "some-new-model", 1000, 1000)

	assert.Greater(t, cost, 0.0, "unknown models must not be counted free")
}

func TestRecord_PerCallAlert(t *testing.T) {
	alerter := &captureAlerter{}
	ledger := NewCostLedger(logger.NewNopLogger(), DefaultThresholds(), alerter)

	// 200K completion tokens of gpt-4o is $2, over the $1 per-call line
	// and over the $2 hourly line in one call.
	ledger.Record(context.Background(), "gpt-4o", 0, 200_000)

	kinds := alerter.kinds()
	assert.Contains(t, kinds, AlertPerCall)
}

func TestRecord_HourlyAlertFiresOnce(t *testing.T) {
	alerter := &captureAlerter{}
	thresholds := Thresholds{PerCall: 100, Hourly: 0.004, Daily: 100}
	ledger := NewCostLedger(logger.NewNopLogger(), thresholds, alerter)

	// Three identical calls at 0.0025 each: the second crosses 0.004,
	// the third is already past it and must not re-alert.
	for i := 0; i < 3; i++ {
		ledger.Record(context.Background(), "llama3", 2000, 1000)
	}

	hourly := 0
	for _, k := range alerter.kinds() {
		if k == AlertHourly {
			hourly++
		}
	}
	assert.Equal(t, 1, hourly)
}

func TestRecord_DailyWindowPrunes(t *testing.T) {
	ledger := NewCostLedger(logger.NewNopLogger(), DefaultThresholds(), nil)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	ledger.now = func() time.Time { return base }
	ledger.Record(context.Background(), "llama3", 2000, 1000)

	ledger.now = func() time.Time { return base.Add(25 * time.Hour) }
	snap := ledger.Snapshot()
	assert.Zero(t, snap.DailySpend)
	assert.Zero(t, snap.HourlySpend)
}

func TestHourlyWindowNarrowerThanDaily(t *testing.T) {
	ledger := NewCostLedger(logger.NewNopLogger(), DefaultThresholds(), nil)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	ledger.now = func() time.Time { return base }
	ledger.Record(context.Background(), "llama3", 2000, 1000)

	ledger.now = func() time.Time { return base.Add(2 * time.Hour) }
	snap := ledger.Snapshot()
	assert.Zero(t, snap.HourlySpend)
	assert.InDelta(t, 0.0025, snap.DailySpend, 1e-9)
}

func TestEmergencyStop(t *testing.T) {
	ledger := NewCostLedger(logger.NewNopLogger(), DefaultThresholds(), nil)

	require.NoError(t, ledger.Allow())

	ledger.SetEmergencyStop(true)
	assert.ErrorIs(t, ledger.Allow(), ErrEmergencyStop)
	assert.True(t, ledger.Snapshot().EmergencyStop)

	ledger.SetEmergencyStop(false)
	assert.NoError(t, ledger.Allow())
}

func TestRecord_ConcurrentCalls(t *testing.T) {
	ledger := NewCostLedger(logger.NewNopLogger(), DefaultThresholds(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ledger.Record(context.Background(), "llama3", 1000, 1000)
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, ledger.Snapshot().Calls)
}
