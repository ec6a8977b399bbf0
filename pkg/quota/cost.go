package quota

import (
	"context"
	"errors"
	"sync"
	"time"

	"vocabforge-be/internal/pkg/logger"
)

// ErrEmergencyStop is returned by Allow when the operator has engaged the
// emergency stop after a cost breach.
var ErrEmergencyStop = errors.New("cost emergency stop engaged")

// ModelPricing is the USD price per 1K tokens for one model.
type ModelPricing struct {
	PromptPer1K     float64
	CompletionPer1K float64
}

var defaultPricing = map[string]ModelPricing{
	"llama3":       {PromptPer1K: 0.0005, CompletionPer1K: 0.0015},
	"llama3.1":     {PromptPer1K: 0.0005, CompletionPer1K: 0.0015},
	"mistral":      {PromptPer1K: 0.0004, CompletionPer1K: 0.0012},
	"gpt-4o-mini":  {PromptPer1K: 0.00015, CompletionPer1K: 0.0006},
	"gpt-4o":       {PromptPer1K: 0.0025, CompletionPer1K: 0.01},
	"mixtral-8x7b": {PromptPer1K: 0.0007, CompletionPer1K: 0.0007},
}

// fallbackPricing covers models absent from the table so an unknown model
// name still accrues spend instead of being counted free.
var fallbackPricing = ModelPricing{PromptPer1K: 0.003, CompletionPer1K: 0.006}

// Thresholds are the soft spend limits. Crossing one raises an alert but
// never blocks by itself.
type Thresholds struct {
	PerCall float64
	Hourly  float64
	Daily   float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{PerCall: 1.0, Hourly: 2.0, Daily: 10.0}
}

type AlertKind string

const (
	AlertPerCall AlertKind = "per_call"
	AlertHourly  AlertKind = "hourly"
	AlertDaily   AlertKind = "daily"
)

// Alert describes one threshold breach.
type Alert struct {
	Kind      AlertKind `json:"kind"`
	Model     string    `json:"model"`
	Amount    float64   `json:"amount"`
	Threshold float64   `json:"threshold"`
	At        time.Time `json:"at"`
}

// Alerter receives threshold breach notifications. Implementations must not
// block the recording path.
type Alerter interface {
	CostAlert(ctx context.Context, alert Alert)
}

type spendEntry struct {
	at   time.Time
	cost float64
}

// Snapshot is a point-in-time view of the ledger for the admin surface.
type Snapshot struct {
	HourlySpend   float64 `json:"hourly_spend"`
	DailySpend    float64 `json:"daily_spend"`
	Calls         int     `json:"calls"`
	EmergencyStop bool    `json:"emergency_stop"`
}

// CostLedger tracks process-wide rolling spend derived from per-call token
// counts. Counters live in this process only; across multiple workers each
// ledger sees its own slice of the spend.
type CostLedger struct {
	mu         sync.Mutex
	entries    []spendEntry
	calls      int
	pricing    map[string]ModelPricing
	thresholds Thresholds
	stopped    bool

	logger  logger.ILogger
	alerter Alerter
	now     func() time.Time
}

func NewCostLedger(l logger.ILogger, thresholds Thresholds, alerter Alerter) *CostLedger {
	return &CostLedger{
		pricing:    defaultPricing,
		thresholds: thresholds,
		logger:     l,
		alerter:    alerter,
		now:        time.Now,
	}
}

// Allow reports whether LLM calls may proceed. Only the emergency stop
// blocks; threshold breaches on their own do not.
func (c *CostLedger) Allow() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return ErrEmergencyStop
	}
	return nil
}

// SetEmergencyStop engages or releases the hard block on further LLM calls.
func (c *CostLedger) SetEmergencyStop(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = on
	c.logger.Warn("cost", "Emergency stop toggled", map[string]interface{}{
		"engaged": on,
	})
}

// Record accrues the cost of one completed LLM call and fires alerts for any
// threshold the call pushed the ledger across. Returns the call's cost.
func (c *CostLedger) Record(ctx context.Context, model string, promptTokens, completionTokens int) float64 {
	pricing, ok := c.pricing[model]
	if !ok {
		pricing = fallbackPricing
	}
	cost := float64(promptTokens)/1000*pricing.PromptPer1K +
		float64(completionTokens)/1000*pricing.CompletionPer1K

	now := c.now()

	c.mu.Lock()
	c.entries = append(c.entries, spendEntry{at: now, cost: cost})
	c.calls++
	c.prune(now)
	hourly := c.spendSince(now.Add(-time.Hour))
	daily := c.spendSince(now.Add(-24 * time.Hour))
	c.mu.Unlock()

	var alerts []Alert
	if cost > c.thresholds.PerCall {
		alerts = append(alerts, Alert{Kind: AlertPerCall, Model: model, Amount: cost, Threshold: c.thresholds.PerCall, At: now})
	}
	if hourly > c.thresholds.Hourly && hourly-cost <= c.thresholds.Hourly {
		alerts = append(alerts, Alert{Kind: AlertHourly, Model: model, Amount: hourly, Threshold: c.thresholds.Hourly, At: now})
	}
	if daily > c.thresholds.Daily && daily-cost <= c.thresholds.Daily {
		alerts = append(alerts, Alert{Kind: AlertDaily, Model: model, Amount: daily, Threshold: c.thresholds.Daily, At: now})
	}

	for _, alert := range alerts {
		c.logger.Warn("cost", "Spend threshold breached", map[string]interface{}{
			"kind":      string(alert.Kind),
			"model":     alert.Model,
			"amount":    alert.Amount,
			"threshold": alert.Threshold,
		})
		if c.alerter != nil {
			c.alerter.CostAlert(ctx, alert)
		}
	}

	return cost
}

// Snapshot returns the current rolling spend.
func (c *CostLedger) Snapshot() Snapshot {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prune(now)
	return Snapshot{
		HourlySpend:   c.spendSince(now.Add(-time.Hour)),
		DailySpend:    c.spendSince(now.Add(-24 * time.Hour)),
		Calls:         c.calls,
		EmergencyStop: c.stopped,
	}
}

// prune drops entries older than the daily window. Callers hold c.mu.
func (c *CostLedger) prune(now time.Time) {
	cutoff := now.Add(-24 * time.Hour)
	keep := c.entries[:0]
	for _, e := range c.entries {
		if e.at.After(cutoff) {
			keep = append(keep, e)
		}
	}
	c.entries = keep
}

func (c *CostLedger) spendSince(cutoff time.Time) float64 {
	var total float64
	for _, e := range c.entries {
		if e.at.After(cutoff) {
			total += e.cost
		}
	}
	return total
}
