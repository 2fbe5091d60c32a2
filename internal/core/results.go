package core

// Result shapes returned by the engine and ledger. Every amount is a
// fixed two-decimal string (see FormatAmount) so repeated computations
// over the same snapshot compare equal byte for byte. Each result also
// carries errors and warnings; a result is always fully populated, with
// zeros where data was missing.

type (
	// Totals is the full cost summary for an estimate.
	Totals struct {
		MaterialCost            string `json:"material_cost"`
		LaborCost               string `json:"labor_cost"`
		LaborCostBeforeDiscount string `json:"labor_cost_before_discount"`
		LaborDiscount           string `json:"labor_discount"`
		WasteCost               string `json:"waste_cost"`
		TaxAmount               string `json:"tax_amount"`
		MarkupAmount            string `json:"markup_amount"`
		TransportationFee       string `json:"transportation_fee"`
		MiscFeesTotal           string `json:"misc_fees_total"`
		Subtotal                string `json:"subtotal"`
		Total                   string `json:"total"`

		Errors   []string `json:"errors,omitempty"`
		Warnings []string `json:"warnings,omitempty"`
	}

	// CategoryBreakdown is one category's share of the estimate,
	// derived from the same per-item pass that produced the Totals.
	CategoryBreakdown struct {
		Name         string `json:"name"`
		ItemCount    int    `json:"item_count"`
		MaterialCost string `json:"material_cost"`
		LaborCost    string `json:"labor_cost"`
		Subtotal     string `json:"subtotal"`
	}

	BreakdownSummary struct {
		CategoryCount int    `json:"category_count"`
		ItemCount     int    `json:"item_count"`
		Subtotal      string `json:"subtotal"`
	}

	CategoryBreakdowns struct {
		Breakdowns []CategoryBreakdown `json:"breakdowns"`
		Summary    BreakdownSummary    `json:"summary"`
		Errors     []string            `json:"errors,omitempty"`
	}

	PaymentSummary struct {
		PaidPayments    int `json:"paid_payments"`
		TotalPayments   int `json:"total_payments"`
		OverduePayments int `json:"overdue_payments"`
	}

	// PaymentDetails reconciles recorded payments against a grand total.
	PaymentDetails struct {
		TotalPaid       string         `json:"total_paid"`
		TotalDue        string         `json:"total_due"`
		OverduePayments string         `json:"overdue_payments"`
		Deposit         string         `json:"deposit"`
		Summary         PaymentSummary `json:"summary"`

		Errors   []string `json:"errors,omitempty"`
		Warnings []string `json:"warnings,omitempty"`
	}
)
