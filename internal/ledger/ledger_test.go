package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"preventivo/internal/core"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func paidDeposit(amount string) core.PaymentRecord {
	return core.PaymentRecord{
		ID:     "dep",
		Date:   core.NewDate(2026, 1, 10),
		Amount: d(amount),
		IsPaid: true,
		Type:   core.PaymentDeposit,
	}
}

func TestDetailsDepositExample(t *testing.T) {
	led := New([]core.PaymentRecord{paidDeposit("200")})
	got := led.Details(d("944"), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))

	if got.TotalPaid != "200.00" {
		t.Errorf("totalPaid = %s", got.TotalPaid)
	}
	if got.TotalDue != "744.00" {
		t.Errorf("totalDue = %s", got.TotalDue)
	}
	if got.Deposit != "200.00" {
		t.Errorf("deposit = %s", got.Deposit)
	}
	if got.Summary.PaidPayments != 1 || got.Summary.TotalPayments != 1 || got.Summary.OverduePayments != 0 {
		t.Errorf("summary = %+v", got.Summary)
	}
}

func TestSeededUnpaidDepositCoerced(t *testing.T) {
	// A document can carry a deposit record with is_paid false; deposits
	// are always paid, so the ledger normalizes the flag on intake.
	led := New([]core.PaymentRecord{{
		ID:     "dep",
		Date:   core.NewDate(2026, 1, 10),
		Amount: d("200"),
		Type:   core.PaymentDeposit,
	}})

	if got := led.Payments(); !got[0].IsPaid {
		t.Fatal("seeded deposit should be coerced to paid")
	}

	// Past-dated and nominally unpaid, yet never overdue and always in
	// totalPaid.
	got := led.Details(d("944"), time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	if got.TotalPaid != "200.00" {
		t.Errorf("totalPaid = %s, want 200.00", got.TotalPaid)
	}
	if got.Summary.OverduePayments != 0 {
		t.Errorf("deposit counted overdue: %+v", got.Summary)
	}
	if rem := led.RemainingBalance(d("944")); rem.StringFixed(2) != "744.00" {
		t.Errorf("remaining = %s, want 744.00", rem.StringFixed(2))
	}
}

func TestDetailsOverdueAndFloor(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	led := New([]core.PaymentRecord{
		paidDeposit("500"),
		{ID: "late", Date: core.NewDate(2026, 3, 1), Amount: d("100"), Type: core.PaymentOneTime},
		{ID: "future", Date: core.NewDate(2026, 9, 1), Amount: d("100"), Type: core.PaymentOneTime},
	})

	got := led.Details(d("400"), now)
	if got.OverduePayments != "100.00" {
		t.Errorf("overdue = %s, want only the past-due unpaid record", got.OverduePayments)
	}
	if got.Summary.OverduePayments != 1 {
		t.Errorf("overdue count = %d", got.Summary.OverduePayments)
	}
	// paid 500 against a 400 total: due floors at zero with a warning
	if got.TotalDue != "0.00" {
		t.Errorf("totalDue = %s, want 0.00", got.TotalDue)
	}
	if len(got.Warnings) == 0 {
		t.Error("expected an over-payment warning")
	}
}

func TestDetailsMalformedRecordDegrades(t *testing.T) {
	led := New([]core.PaymentRecord{
		paidDeposit("200"),
		{ID: "bad", Amount: d("-5"), Type: core.PaymentOneTime}, // negative and dateless
	})
	got := led.Details(d("944"), time.Now())

	if got.TotalPaid != "200.00" {
		t.Errorf("malformed record must contribute zero, totalPaid = %s", got.TotalPaid)
	}
	if len(got.Errors) == 0 {
		t.Error("expected a record error")
	}
	if got.Summary.TotalPayments != 2 {
		t.Errorf("totalPayments = %d, want 2", got.Summary.TotalPayments)
	}
}

func TestSetDepositStateMachine(t *testing.T) {
	led := New(nil)

	// Absent -> Present
	if err := led.SetDeposit(d("200"), core.NewDate(2026, 1, 10), "check"); err != nil {
		t.Fatalf("SetDeposit: %v", err)
	}
	payments := led.Payments()
	if len(payments) != 1 || payments[0].Type != core.PaymentDeposit || !payments[0].IsPaid {
		t.Fatalf("deposit not recorded as paid: %+v", payments)
	}
	id := payments[0].ID

	// Present -> Present: replace in place, same record id
	if err := led.SetDeposit(d("350"), core.NewDate(2026, 1, 12), "wire"); err != nil {
		t.Fatalf("replace deposit: %v", err)
	}
	payments = led.Payments()
	if len(payments) != 1 || payments[0].ID != id || payments[0].Amount.StringFixed(2) != "350.00" {
		t.Fatalf("deposit not replaced in place: %+v", payments)
	}

	// Present -> Absent via zero amount
	if err := led.SetDeposit(decimal.Zero, core.Date{}, ""); err != nil {
		t.Fatalf("remove deposit: %v", err)
	}
	if got := led.Payments(); len(got) != 0 {
		t.Fatalf("deposit not removed: %+v", got)
	}

	// Removing again is a no-op, not an error
	v := led.Version()
	if err := led.SetDeposit(decimal.Zero, core.Date{}, ""); err != nil {
		t.Fatalf("remove absent deposit: %v", err)
	}
	if led.Version() != v {
		t.Fatal("removing an absent deposit must not write")
	}
}

func TestSetDepositRejectsNegativeAndMissingDate(t *testing.T) {
	led := New(nil)
	if err := led.SetDeposit(d("-1"), core.NewDate(2026, 1, 1), ""); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("negative deposit: %v", err)
	}
	if err := led.SetDeposit(d("100"), core.Date{}, ""); !errors.Is(err, core.ErrMissingDate) {
		t.Fatalf("dateless deposit: %v", err)
	}
}

func TestDuplicateDepositBlocked(t *testing.T) {
	// Legacy record whose note marks it as a deposit
	legacy := core.PaymentRecord{
		ID: "legacy", Date: core.NewDate(2025, 12, 1),
		Amount: d("100"), IsPaid: true,
		Type: core.PaymentOneTime, Note: "initial deposit",
	}
	led := New([]core.PaymentRecord{legacy})
	v := led.Version()

	err := led.SetDeposit(d("200"), core.NewDate(2026, 1, 10), "check")
	if !errors.Is(err, core.ErrDuplicateDeposit) {
		t.Fatalf("expected ErrDuplicateDeposit, got %v", err)
	}
	if !core.IsConsistency(err) {
		t.Fatalf("expected ConsistencyError, got %T", err)
	}
	if led.Version() != v {
		t.Fatal("failed SetDeposit must make no change")
	}

	// AddPayment with a deposit-like note hits the same wall
	_, err = led.AddPayment(core.PaymentRecord{
		Date: core.NewDate(2026, 2, 1), Amount: d("50"),
		Type: core.PaymentOneTime, Method: "deposit transfer",
	})
	if !errors.Is(err, core.ErrDuplicateDeposit) {
		t.Fatalf("expected ErrDuplicateDeposit from AddPayment, got %v", err)
	}

	// The existing record is untouched
	got := led.Payments()
	if len(got) != 1 || !got[0].Amount.Equal(d("100")) {
		t.Fatalf("existing deposit changed: %+v", got)
	}
}

func TestAddPaymentAssignsID(t *testing.T) {
	led := New(nil)
	p, err := led.AddPayment(core.PaymentRecord{
		Date: core.NewDate(2026, 4, 1), Amount: d("75"), Type: core.PaymentOneTime,
	})
	if err != nil {
		t.Fatalf("AddPayment: %v", err)
	}
	if p.ID == "" {
		t.Fatal("expected a generated id")
	}
}

func TestTogglePaid(t *testing.T) {
	led := New([]core.PaymentRecord{
		paidDeposit("200"),
		{ID: "one", Date: core.NewDate(2026, 4, 1), Amount: d("75"), Type: core.PaymentOneTime},
	})

	if err := led.TogglePaid("one"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := led.Payments(); !got[1].IsPaid {
		t.Fatal("record should be paid after toggle")
	}
	if err := led.TogglePaid("one"); err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if got := led.Payments(); got[1].IsPaid {
		t.Fatal("record should be unpaid after second toggle")
	}

	if err := led.TogglePaid("dep"); !errors.Is(err, core.ErrDepositImmutable) {
		t.Fatalf("deposit toggle must fail, got %v", err)
	}
	if err := led.TogglePaid("missing"); !errors.Is(err, core.ErrPaymentNotFound) {
		t.Fatalf("unknown id: %v", err)
	}
}

func TestEditAmountMarksInstallmentAdjusted(t *testing.T) {
	led := New([]core.PaymentRecord{
		{ID: "i1", Date: core.NewDate(2026, 4, 1), Amount: d("33.33"),
			Type: core.PaymentInstallment, InstallmentNumber: 1, TotalInstallments: 3},
		{ID: "p1", Date: core.NewDate(2026, 4, 1), Amount: d("75"), Type: core.PaymentOneTime},
	})

	if err := led.EditAmount("i1", d("40")); err != nil {
		t.Fatalf("EditAmount: %v", err)
	}
	got := led.Payments()
	if !got[0].ManuallyAdjusted {
		t.Fatal("edited installment must be marked manually adjusted")
	}

	if err := led.EditAmount("p1", d("80")); err != nil {
		t.Fatalf("EditAmount one-time: %v", err)
	}
	if got := led.Payments(); got[1].ManuallyAdjusted {
		t.Fatal("one-time payments never carry the adjusted flag")
	}

	if err := led.EditAmount("i1", d("-3")); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("negative edit: %v", err)
	}
}

func TestDeletePayment(t *testing.T) {
	led := New([]core.PaymentRecord{
		{ID: "a", Date: core.NewDate(2026, 4, 1), Amount: d("10"), Type: core.PaymentOneTime},
		{ID: "b", Date: core.NewDate(2026, 5, 1), Amount: d("20"), Type: core.PaymentOneTime},
	})
	if err := led.DeletePayment("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got := led.Payments()
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected collection after delete: %+v", got)
	}
	if err := led.DeletePayment("a"); !errors.Is(err, core.ErrPaymentNotFound) {
		t.Fatalf("double delete: %v", err)
	}
}

func TestCopyOnWriteSnapshots(t *testing.T) {
	led := New([]core.PaymentRecord{
		{ID: "a", Date: core.NewDate(2026, 4, 1), Amount: d("10"), Type: core.PaymentOneTime},
	})
	before := led.Payments()

	if err := led.EditAmount("a", d("99")); err != nil {
		t.Fatalf("edit: %v", err)
	}

	// The earlier snapshot is untouched by the mutation.
	if !before[0].Amount.Equal(d("10")) {
		t.Fatalf("snapshot mutated in place: %s", before[0].Amount)
	}
}

func TestRemainingBalance(t *testing.T) {
	led := New([]core.PaymentRecord{
		paidDeposit("200"),
		{ID: "one", Date: core.NewDate(2026, 4, 1), Amount: d("100"), IsPaid: true, Type: core.PaymentOneTime},
		{ID: "two", Date: core.NewDate(2026, 5, 1), Amount: d("100"), Type: core.PaymentOneTime},
	})
	if got := led.RemainingBalance(d("944")); got.StringFixed(2) != "644.00" {
		t.Errorf("remaining = %s, want 644.00", got.StringFixed(2))
	}
	if got := led.RemainingBalance(d("100")); !got.IsZero() {
		t.Errorf("remaining floors at zero, got %s", got)
	}
}
