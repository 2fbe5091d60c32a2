// Package ledger tracks payments against an estimate's grand total: a
// single privileged deposit, ad-hoc one-time payments, and a generated
// installment plan. Every mutation replaces the payments collection
// copy-on-write, so readers always observe a complete snapshot, and a
// version counter records each committed write.
package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"preventivo/internal/core"
)

// Ledger holds the ordered payment collection.
type Ledger struct {
	mu       sync.Mutex
	payments []core.PaymentRecord
	version  int64
}

// New builds a ledger over an initial payment collection. The slice is
// copied; the caller's backing array is never mutated. Deposits are
// always paid, so a deposit record seeded with is_paid false is coerced
// here, the same way AddPayment and SetDeposit force the flag.
func New(payments []core.PaymentRecord) *Ledger {
	next := append([]core.PaymentRecord(nil), payments...)
	for i := range next {
		if next[i].Type == core.PaymentDeposit {
			next[i].IsPaid = true
		}
	}
	return &Ledger{payments: next}
}

// Payments returns a copy of the current collection in order.
func (l *Ledger) Payments() []core.PaymentRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]core.PaymentRecord(nil), l.payments...)
}

// Version counts committed writes. It only moves when a mutation is
// actually applied, which makes it usable as a write probe.
func (l *Ledger) Version() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// replace commits a new collection. Callers must hold l.mu.
func (l *Ledger) replace(next []core.PaymentRecord) {
	l.payments = next
	l.version++
}

// Details reconciles the collection against a grand total. Records that
// fail validation are reported and contribute zero; the result is always
// fully populated.
func (l *Ledger) Details(grandTotal decimal.Decimal, now time.Time) core.PaymentDetails {
	l.mu.Lock()
	payments := append([]core.PaymentRecord(nil), l.payments...)
	l.mu.Unlock()

	var totalPaid, overdue, deposit decimal.Decimal
	var details core.PaymentDetails
	depositSeen := false

	for i, p := range payments {
		details.Summary.TotalPayments++
		if err := p.Validate(); err != nil {
			details.Errors = append(details.Errors, fmt.Sprintf("payment %d: %v", i+1, err))
			continue
		}
		if p.Type == core.PaymentDeposit {
			if depositSeen {
				details.Errors = append(details.Errors,
					(&core.ConsistencyError{Reason: "more than one deposit recorded", Err: core.ErrDuplicateDeposit}).Error())
			} else {
				depositSeen = true
				deposit = p.Amount
			}
		}
		if p.IsPaid {
			totalPaid = totalPaid.Add(p.Amount)
			details.Summary.PaidPayments++
			continue
		}
		if !p.Date.IsZero() && p.Date.Before(now) {
			overdue = overdue.Add(p.Amount)
			details.Summary.OverduePayments++
		}
	}

	totalDue := grandTotal.Sub(totalPaid)
	if totalDue.IsNegative() {
		totalDue = decimal.Zero
		details.Warnings = append(details.Warnings, "payments exceed the grand total")
	}

	details.TotalPaid = core.FormatAmount(totalPaid)
	details.TotalDue = core.FormatAmount(totalDue)
	details.OverduePayments = core.FormatAmount(overdue)
	details.Deposit = core.FormatAmount(deposit)
	return details
}

// RemainingBalance is the grand total minus everything already paid,
// floored at zero.
func (l *Ledger) RemainingBalance(grandTotal decimal.Decimal) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	remaining := grandTotal
	for _, p := range l.payments {
		if p.IsPaid {
			remaining = remaining.Sub(p.Amount)
		}
	}
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// SetDeposit drives the deposit state machine. A positive amount replaces
// the existing deposit in place or records a new one; a zero amount
// removes it. Recording a deposit while a deposit-like legacy record
// exists is a consistency error and changes nothing.
func (l *Ledger) SetDeposit(amount decimal.Decimal, date core.Date, method string) error {
	if amount.IsNegative() {
		return &core.ValidationError{Field: "amount", Reason: "deposit must not be negative", Err: core.ErrInvalidAmount}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	depositIdx := -1
	legacyIdx := -1
	for i, p := range l.payments {
		switch {
		case p.Type == core.PaymentDeposit && depositIdx < 0:
			depositIdx = i
		case p.Type != core.PaymentDeposit && p.IsDepositLike() && legacyIdx < 0:
			legacyIdx = i
		}
	}

	if amount.IsZero() {
		if depositIdx < 0 {
			return nil // already absent
		}
		next := make([]core.PaymentRecord, 0, len(l.payments)-1)
		next = append(next, l.payments[:depositIdx]...)
		next = append(next, l.payments[depositIdx+1:]...)
		l.replace(next)
		return nil
	}

	if date.IsZero() {
		return &core.ValidationError{Field: "date", Reason: "deposit date is required", Err: core.ErrMissingDate}
	}

	if depositIdx >= 0 {
		next := append([]core.PaymentRecord(nil), l.payments...)
		next[depositIdx].Amount = amount
		next[depositIdx].Date = date
		next[depositIdx].Method = method
		next[depositIdx].IsPaid = true
		l.replace(next)
		return nil
	}

	if legacyIdx >= 0 {
		return &core.ConsistencyError{
			Reason: fmt.Sprintf("payment %q already records a deposit", l.payments[legacyIdx].ID),
			Err:    core.ErrDuplicateDeposit,
		}
	}

	next := append([]core.PaymentRecord(nil), l.payments...)
	next = append(next, core.PaymentRecord{
		ID:     uuid.NewString(),
		Date:   date,
		Amount: amount,
		Method: method,
		IsPaid: true, // deposits are always paid
		Type:   core.PaymentDeposit,
	})
	l.replace(next)
	return nil
}

// AddPayment validates and appends a record, assigning an id when the
// caller left it empty. Deposit-like records are rejected while any
// deposit already exists.
func (l *Ledger) AddPayment(p core.PaymentRecord) (core.PaymentRecord, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Type == core.PaymentDeposit {
		p.IsPaid = true
	}
	if err := p.Validate(); err != nil {
		return core.PaymentRecord{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if p.IsDepositLike() {
		for _, existing := range l.payments {
			if existing.IsDepositLike() {
				return core.PaymentRecord{}, &core.ConsistencyError{
					Reason: fmt.Sprintf("payment %q already records a deposit", existing.ID),
					Err:    core.ErrDuplicateDeposit,
				}
			}
		}
	}

	next := append([]core.PaymentRecord(nil), l.payments...)
	next = append(next, p)
	l.replace(next)
	return p, nil
}

// TogglePaid flips a record between unpaid and paid. Deposits are always
// paid and cannot be toggled.
func (l *Ledger) TogglePaid(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return &core.ValidationError{Field: "id", Reason: "no payment with id " + id, Err: core.ErrPaymentNotFound}
	}
	if l.payments[idx].Type == core.PaymentDeposit {
		return &core.ConsistencyError{Reason: "deposit cannot be toggled", Err: core.ErrDepositImmutable}
	}

	next := append([]core.PaymentRecord(nil), l.payments...)
	next[idx].IsPaid = !next[idx].IsPaid
	l.replace(next)
	return nil
}

// EditAmount overrides a record's amount. Installments edited this way
// are marked manually adjusted and excluded from automatic redistribution
// until reset.
func (l *Ledger) EditAmount(id string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &core.ValidationError{Field: "amount", Reason: "must not be negative", Err: core.ErrInvalidAmount}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return &core.ValidationError{Field: "id", Reason: "no payment with id " + id, Err: core.ErrPaymentNotFound}
	}

	next := append([]core.PaymentRecord(nil), l.payments...)
	next[idx].Amount = amount
	if next[idx].Type == core.PaymentInstallment {
		next[idx].ManuallyAdjusted = true
	}
	l.replace(next)
	return nil
}

// DeletePayment removes a record by id.
func (l *Ledger) DeletePayment(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOf(id)
	if idx < 0 {
		return &core.ValidationError{Field: "id", Reason: "no payment with id " + id, Err: core.ErrPaymentNotFound}
	}

	next := make([]core.PaymentRecord, 0, len(l.payments)-1)
	next = append(next, l.payments[:idx]...)
	next = append(next, l.payments[idx+1:]...)
	l.replace(next)
	return nil
}

// indexOf returns the position of id or -1. Callers must hold l.mu.
func (l *Ledger) indexOf(id string) int {
	for i, p := range l.payments {
		if p.ID == id {
			return i
		}
	}
	return -1
}
