package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	PaymentDeposit     PaymentType = "deposit"
	PaymentInstallment PaymentType = "installment"
	PaymentOneTime     PaymentType = "one_time"
)

type (
	PaymentType string

	// PaymentRecord is the durable payment shape. Any persistence layer
	// sitting above the engine must preserve these fields verbatim.
	PaymentRecord struct {
		ID     string          `json:"id"`
		Date   Date            `json:"date"`
		Amount decimal.Decimal `json:"amount"`
		Method string          `json:"method,omitempty"`
		Note   string          `json:"note,omitempty"`
		IsPaid bool            `json:"is_paid"`
		Type   PaymentType     `json:"type"`

		// Set only for installment records
		InstallmentNumber int  `json:"installment_number,omitempty"`
		TotalInstallments int  `json:"total_installments,omitempty"`
		ManuallyAdjusted  bool `json:"manually_adjusted,omitempty"`
	}
)

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentDeposit, PaymentInstallment, PaymentOneTime:
		return true
	}
	return false
}

func (p PaymentRecord) Validate() error {
	if p.Amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "must not be negative", Err: ErrInvalidAmount}
	}
	if p.Date.IsZero() {
		return &ValidationError{Field: "date", Reason: "payment date is required", Err: ErrMissingDate}
	}
	if !p.Type.Valid() {
		return &ValidationError{Field: "type", Reason: "unknown payment type " + string(p.Type)}
	}
	if p.Type == PaymentInstallment {
		if p.InstallmentNumber < 1 || p.TotalInstallments < 1 || p.InstallmentNumber > p.TotalInstallments {
			return &ValidationError{Field: "installment_number", Reason: "installment position out of range"}
		}
	}
	return nil
}

// IsDepositLike reports whether the record counts against deposit
// uniqueness: either Deposit-typed or a legacy record whose note or
// method textually indicates a deposit.
func (p PaymentRecord) IsDepositLike() bool {
	if p.Type == PaymentDeposit {
		return true
	}
	return strings.Contains(strings.ToLower(p.Note), "deposit") ||
		strings.Contains(strings.ToLower(p.Method), "deposit")
}
