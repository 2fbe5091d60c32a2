// Package engine computes cost totals for a remodeling estimate: it
// collapses measured surfaces into billable units, aggregates material
// and labor across categories in a single pass, applies discount, waste,
// tax, markup, and fees, and memoizes the pass against a content
// fingerprint of its inputs.
package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"preventivo/internal/cache"
	"preventivo/internal/catalog"
	"preventivo/internal/core"
	"preventivo/internal/ledger"
	"preventivo/internal/log"
)

// Options tune a single engine instance.
type Options struct {
	// EnableCaching memoizes the aggregation pass per input fingerprint.
	EnableCaching bool

	// StrictValidation turns catalog mismatches (unknown work type,
	// invalid subtype) into per-item errors instead of warnings.
	StrictValidation bool

	// Timeout bounds the worst-case aggregation pass. Items past the
	// deadline contribute zero and a calculation error is reported.
	// Zero disables the guard.
	Timeout time.Duration

	// CacheSize and CacheTTL size the memo store. Zero values take the
	// defaults.
	CacheSize int
	CacheTTL  time.Duration
}

// DefaultOptions returns the recommended options for interactive use.
func DefaultOptions() Options {
	return Options{
		EnableCaching: true,
		Timeout:       5 * time.Second,
		CacheSize:     32,
		CacheTTL:      10 * time.Minute,
	}
}

// Engine computes totals, category breakdowns, and payment details over
// one immutable input snapshot. Inputs are never mutated; each operation
// derives from the same memoized aggregation pass.
type Engine struct {
	categories []core.Category
	settings   core.Settings
	catalog    catalog.WorkTypeCapability
	opts       Options
	logger     *log.Logger
	now        func() time.Time

	fp    string
	memo  *cache.LRUCache[*aggregateResult]
	group singleflight.Group
}

// New builds an engine over a snapshot of categories and settings. A nil
// capability falls back to the default catalog; a nil logger discards
// diagnostics.
func New(categories []core.Category, settings core.Settings, capability catalog.WorkTypeCapability, opts Options, logger *log.Logger) *Engine {
	def := DefaultOptions()
	if opts.CacheSize <= 0 {
		opts.CacheSize = def.CacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = def.CacheTTL
	}
	if capability == nil {
		capability = catalog.Default()
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Engine{
		categories: categories,
		settings:   settings,
		catalog:    capability,
		opts:       opts,
		logger:     logger.WithComponent(log.ComponentEngine),
		now:        time.Now,
		fp:         fingerprint(categories, settings),
		memo:       cache.NewLRUCache[*aggregateResult](opts.CacheSize, opts.CacheTTL),
	}
}

// Fingerprint returns the content hash of this engine's input snapshot.
func (e *Engine) Fingerprint() string { return e.fp }

// CacheStats exposes the memo store's hit/miss counters.
func (e *Engine) CacheStats() cache.Stats { return e.memo.Stats() }

// snapshot returns the shared aggregation result, computing it at most
// once per fingerprint. Concurrent identical requests coalesce through
// the singleflight group in front of the memo.
func (e *Engine) snapshot() *aggregateResult {
	if !e.opts.EnableCaching || e.fp == "" {
		return e.aggregate()
	}
	if r, ok := e.memo.Get(e.fp); ok {
		return r
	}
	v, _, _ := e.group.Do(e.fp, func() (interface{}, error) {
		r := e.aggregate()
		e.memo.Set(e.fp, r)
		return r, nil
	})
	return v.(*aggregateResult)
}

// CalculateTotals produces the full cost summary for the snapshot.
// Malformed items degrade their own contribution to zero and surface in
// Errors; the result is always fully populated.
func (e *Engine) CalculateTotals() core.Totals {
	r := e.snapshot()
	return core.Totals{
		MaterialCost:            core.FormatAmount(r.materialCost),
		LaborCost:               core.FormatAmount(r.laborCost),
		LaborCostBeforeDiscount: core.FormatAmount(r.laborBefore),
		LaborDiscount:           core.FormatAmount(r.laborDiscount),
		WasteCost:               core.FormatAmount(r.wasteCost),
		TaxAmount:               core.FormatAmount(r.taxAmount),
		MarkupAmount:            core.FormatAmount(r.markupAmount),
		TransportationFee:       core.FormatAmount(r.transportFee),
		MiscFeesTotal:           core.FormatAmount(r.miscFeesTotal),
		Subtotal:                core.FormatAmount(r.subtotal),
		Total:                   core.FormatAmount(r.total),
		Errors:                  append([]string(nil), r.errors...),
		Warnings:                append([]string(nil), r.warnings...),
	}
}

// CalculateCategoryBreakdowns derives per-category subtotals from the
// same pass that produced the totals. The labor discount applies
// proportionally within each category.
func (e *Engine) CalculateCategoryBreakdowns() core.CategoryBreakdowns {
	r := e.snapshot()
	one := decimal.NewFromInt(1)
	keep := one.Sub(r.laborDiscount)

	out := core.CategoryBreakdowns{
		Breakdowns: make([]core.CategoryBreakdown, 0, len(r.perCategory)),
		Errors:     append([]string(nil), r.errors...),
	}
	var itemCount int
	var subtotal decimal.Decimal
	for _, ct := range r.perCategory {
		labor := ct.laborBefore.Mul(keep).RoundBank(2)
		catSubtotal := ct.material.Add(labor)
		out.Breakdowns = append(out.Breakdowns, core.CategoryBreakdown{
			Name:         ct.name,
			ItemCount:    ct.itemCount,
			MaterialCost: core.FormatAmount(ct.material),
			LaborCost:    core.FormatAmount(labor),
			Subtotal:     core.FormatAmount(catSubtotal),
		})
		itemCount += ct.itemCount
		subtotal = subtotal.Add(catSubtotal)
	}
	out.Summary = core.BreakdownSummary{
		CategoryCount: len(r.perCategory),
		ItemCount:     itemCount,
		Subtotal:      core.FormatAmount(subtotal),
	}
	return out
}

// CalculatePaymentDetails reconciles the snapshot's payments against the
// grand total. Passing a precomputed total skips the aggregation pass;
// omitted, the engine's own memoized total is used.
func (e *Engine) CalculatePaymentDetails(precomputed ...decimal.Decimal) core.PaymentDetails {
	var grandTotal decimal.Decimal
	if len(precomputed) > 0 {
		grandTotal = precomputed[0]
	} else {
		grandTotal = e.snapshot().total
	}
	return ledger.New(e.settings.Payments).Details(grandTotal, e.now())
}

// GrandTotal returns the snapshot's numeric total, for callers (ledger,
// reconciler) that need the exact value rather than its rendering.
func (e *Engine) GrandTotal() decimal.Decimal {
	return e.snapshot().total
}
