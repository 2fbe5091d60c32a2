package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"preventivo/internal/core"
	"preventivo/internal/log"
)

const (
	minInstallments = 1
	maxInstallments = 60
)

// Reconciler generates and rebalances a fixed-count installment plan
// against the ledger's remaining balance.
//
// Like the rest of the engine it runs single-goroutine: the re-entrancy
// guard protects against the mutation feedback loop (a write changes the
// totals that feed back into the balance, which would re-trigger the
// write), not against parallel callers.
type Reconciler struct {
	ledger *Ledger
	logger *log.Logger

	recalcInProgress bool
	lastBalance      decimal.Decimal
	hasLastBalance   bool
}

// NewReconciler wires a reconciler to a ledger. A nil logger discards
// diagnostics.
func NewReconciler(l *Ledger, logger *log.Logger) *Reconciler {
	if logger == nil {
		logger = log.Discard()
	}
	return &Reconciler{ledger: l, logger: logger.WithComponent(log.ComponentReconciler)}
}

// Generate divides remainingBalance into periods monthly amounts. Every
// period takes the banker's-rounded per-period share except the last,
// which takes the exact residual, so the generated amounts always sum to
// remainingBalance with no drift.
func (r *Reconciler) Generate(periods int, start core.Date, remainingBalance decimal.Decimal) ([]core.PaymentRecord, error) {
	if periods < minInstallments || periods > maxInstallments {
		return nil, &core.ValidationError{
			Field:  "periods",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", minInstallments, maxInstallments, periods),
			Err:    core.ErrInvalidDuration,
		}
	}
	if !remainingBalance.IsPositive() {
		return nil, &core.ValidationError{Field: "remaining_balance", Reason: "must be positive", Err: core.ErrInvalidAmount}
	}
	if err := start.Validate(); err != nil {
		return nil, &core.ValidationError{Field: "start", Reason: err.Error(), Err: core.ErrMissingDate}
	}

	amounts := splitExact(remainingBalance, periods)
	plan := make([]core.PaymentRecord, periods)
	for i := range plan {
		plan[i] = core.PaymentRecord{
			ID:                uuid.NewString(),
			Date:              start.AddMonths(i),
			Amount:            amounts[i],
			Note:              fmt.Sprintf("Installment %d of %d", i+1, periods),
			Type:              core.PaymentInstallment,
			InstallmentNumber: i + 1,
			TotalInstallments: periods,
		}
	}

	r.logger.Info("generated installment plan",
		log.FieldOperation, log.OpGenerate,
		log.FieldPeriods, periods,
		log.FieldBalance, remainingBalance.StringFixed(2))
	return plan, nil
}

// Apply atomically replaces the active installment set with the
// generated plan: all existing installment records are removed and the
// new ones inserted in a single committed write.
func (r *Reconciler) Apply(plan []core.PaymentRecord) {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()

	next := make([]core.PaymentRecord, 0, len(r.ledger.payments)+len(plan))
	for _, p := range r.ledger.payments {
		if p.Type != core.PaymentInstallment {
			next = append(next, p)
		}
	}
	next = append(next, plan...)
	r.ledger.replace(next)
}

// AutoRecalculate redistributes the unpaid, unpinned installments so the
// plan tracks a changed remaining balance. Paid and manually adjusted
// installments keep their amounts; the redistribution pool is the new
// balance minus the pinned unpaid amounts, floored at zero.
//
// The operation is idempotent and re-entrancy safe: a recalculation
// already in progress is a no-op, and so is an unchanged balance.
func (r *Reconciler) AutoRecalculate(newRemainingBalance decimal.Decimal) {
	if r.recalcInProgress {
		return
	}
	if r.hasLastBalance && r.lastBalance.Equal(newRemainingBalance) {
		return
	}
	r.recalcInProgress = true
	// The guard stays up until the write below is committed, so the
	// recompute this write triggers in the host observes it exactly once.
	defer func() { r.recalcInProgress = false }()

	r.lastBalance = newRemainingBalance
	r.hasLastBalance = true

	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()

	var eligible []int
	pinned := decimal.Zero
	for i, p := range r.ledger.payments {
		if p.Type != core.PaymentInstallment || p.IsPaid {
			continue
		}
		if p.ManuallyAdjusted {
			pinned = pinned.Add(p.Amount)
			continue
		}
		eligible = append(eligible, i)
	}
	if len(eligible) == 0 {
		return
	}

	pool := newRemainingBalance.Sub(pinned)
	if pool.IsNegative() {
		pool = decimal.Zero
	}

	amounts := splitExact(pool, len(eligible))
	next := append([]core.PaymentRecord(nil), r.ledger.payments...)
	for n, idx := range eligible {
		next[idx].Amount = amounts[n]
	}
	r.ledger.replace(next)

	r.logger.Info("rebalanced installments",
		log.FieldOperation, log.OpRecalculate,
		log.FieldBalance, newRemainingBalance.StringFixed(2),
		"eligible", len(eligible),
		"pinned", pinned.StringFixed(2))
}

// ResetManualAdjustments clears the pinned flag on every installment so
// the next recalculation redistributes all unpaid amounts.
func (r *Reconciler) ResetManualAdjustments() {
	r.ledger.mu.Lock()
	defer r.ledger.mu.Unlock()

	changed := false
	next := append([]core.PaymentRecord(nil), r.ledger.payments...)
	for i := range next {
		if next[i].Type == core.PaymentInstallment && next[i].ManuallyAdjusted {
			next[i].ManuallyAdjusted = false
			changed = true
		}
	}
	if changed {
		r.ledger.replace(next)
	}
}

// splitExact divides an amount into n cent-precise parts that sum to it
// exactly. Each part is the banker's-rounded share; the last takes the
// residual. A floor-rounded share keeps every part non-negative when the
// residual would otherwise go below zero.
func splitExact(amount decimal.Decimal, n int) []decimal.Decimal {
	count := decimal.NewFromInt(int64(n))
	share := amount.Div(count).RoundBank(2)
	last := amount.Sub(share.Mul(decimal.NewFromInt(int64(n - 1))))
	if last.IsNegative() {
		share = amount.Div(count).RoundDown(2)
		last = amount.Sub(share.Mul(decimal.NewFromInt(int64(n - 1))))
	}

	parts := make([]decimal.Decimal, n)
	for i := 0; i < n-1; i++ {
		parts[i] = share
	}
	parts[n-1] = last
	return parts
}
