package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MeasureArea   MeasurementType = "area"
	MeasureLength MeasurementType = "length"
	MeasureCount  MeasurementType = "count"
)

type (
	// MeasurementType selects which scalar of a Surface is billable.
	MeasurementType string

	Date struct {
		time.Time
	}

	// Surface is a measured physical entity belonging to a work item.
	// Which measurement field is required depends on the owning item's
	// MeasurementType; the others stay nil. WasteFactor is optional and
	// carried per surface, independent of settings-level waste entries.
	Surface struct {
		Name        string           `json:"name,omitempty"`
		Area        *decimal.Decimal `json:"area,omitempty"`
		Length      *decimal.Decimal `json:"length,omitempty"`
		Count       *decimal.Decimal `json:"count,omitempty"`
		WasteFactor *decimal.Decimal `json:"waste_factor,omitempty"`
	}

	// WorkItem is one billable unit of remodeling work.
	WorkItem struct {
		Type                string          `json:"type"`
		Subtype             string          `json:"subtype,omitempty"`
		CustomName          string          `json:"custom_name,omitempty"`
		MeasurementType     MeasurementType `json:"measurement_type"`
		MaterialCostPerUnit decimal.Decimal `json:"material_cost_per_unit"`
		LaborCostPerUnit    decimal.Decimal `json:"labor_cost_per_unit"`
		Surfaces            []Surface       `json:"surfaces"`
		Description         string          `json:"description,omitempty"`
	}

	Category struct {
		Key       string     `json:"key"`
		Name      string     `json:"name"`
		WorkItems []WorkItem `json:"work_items"`
	}

	// Fee is a flat miscellaneous charge added after tax and markup.
	Fee struct {
		Name   string          `json:"name"`
		Amount decimal.Decimal `json:"amount"`
	}

	// WasteEntry is a settings-level waste allowance: a surface cost
	// multiplied by a waste factor. It does not reference any work item.
	WasteEntry struct {
		Name        string          `json:"name,omitempty"`
		SurfaceCost decimal.Decimal `json:"surface_cost"`
		WasteFactor decimal.Decimal `json:"waste_factor"`
	}

	Settings struct {
		TaxRate           decimal.Decimal `json:"tax_rate"`
		Markup            decimal.Decimal `json:"markup"`
		LaborDiscount     decimal.Decimal `json:"labor_discount"`
		TransportationFee decimal.Decimal `json:"transportation_fee"`
		MiscFees          []Fee           `json:"misc_fees,omitempty"`
		WasteEntries      []WasteEntry    `json:"waste_entries,omitempty"`
		Payments          []PaymentRecord `json:"payments,omitempty"`
	}

	// Estimate is the full input snapshot the engine computes over.
	Estimate struct {
		Categories []Category `json:"categories"`
		Settings   Settings   `json:"settings"`
	}
)

var (
	ErrInvalidDay   = errors.New("invalid day")
	ErrInvalidMonth = errors.New("invalid month")
)

const dateLayout = "2006-01-02"

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	_, month, day := d.Date()
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// AddMonths returns the date shifted by n calendar months.
func (d Date) AddMonths(n int) Date {
	return Date{Time: d.Time.AddDate(0, n, 0)}
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	// Accept plain dates and full timestamps
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Valid reports whether m is one of the supported measurement types.
func (m MeasurementType) Valid() bool {
	switch m {
	case MeasureArea, MeasureLength, MeasureCount:
		return true
	}
	return false
}

// UnitLabel returns the display unit for quantities of this type.
func (m MeasurementType) UnitLabel() string {
	switch m {
	case MeasureArea:
		return "sq ft"
	case MeasureLength:
		return "ln ft"
	case MeasureCount:
		return "units"
	}
	return ""
}

// DisplayName returns the human-readable name for a work item:
// the custom name when set, otherwise type plus subtype.
func (w WorkItem) DisplayName() string {
	if strings.TrimSpace(w.CustomName) != "" {
		return w.CustomName
	}
	if w.Subtype != "" {
		return w.Type + " / " + w.Subtype
	}
	return w.Type
}

func (w WorkItem) Validate() error {
	if strings.TrimSpace(w.Type) == "" && strings.TrimSpace(w.CustomName) == "" {
		return &ValidationError{Field: "type", Reason: "work item needs a type or a custom name"}
	}
	if w.MaterialCostPerUnit.IsNegative() {
		return &ValidationError{Field: "material_cost_per_unit", Reason: "must not be negative", Err: ErrInvalidAmount}
	}
	if w.LaborCostPerUnit.IsNegative() {
		return &ValidationError{Field: "labor_cost_per_unit", Reason: "must not be negative", Err: ErrInvalidAmount}
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Key) == "" {
		return &ValidationError{Field: "key", Reason: "category key cannot be empty"}
	}
	if strings.TrimSpace(c.Name) == "" {
		return &ValidationError{Field: "name", Reason: "category name cannot be empty"}
	}
	return nil
}

func (s Settings) Validate() error {
	one := decimal.NewFromInt(1)
	if s.TaxRate.IsNegative() {
		return &ValidationError{Field: "tax_rate", Reason: "must not be negative"}
	}
	if s.Markup.IsNegative() {
		return &ValidationError{Field: "markup", Reason: "must not be negative"}
	}
	if s.LaborDiscount.IsNegative() || s.LaborDiscount.GreaterThan(one) {
		return &ValidationError{Field: "labor_discount", Reason: "must be a fraction between 0 and 1"}
	}
	if s.TransportationFee.IsNegative() {
		return &ValidationError{Field: "transportation_fee", Reason: "must not be negative", Err: ErrInvalidAmount}
	}
	for _, f := range s.MiscFees {
		if f.Amount.IsNegative() {
			return &ValidationError{Field: "misc_fees", Reason: "fee " + f.Name + " must not be negative", Err: ErrInvalidAmount}
		}
	}
	for _, w := range s.WasteEntries {
		if w.SurfaceCost.IsNegative() || w.WasteFactor.IsNegative() {
			return &ValidationError{Field: "waste_entries", Reason: "waste entries must not be negative", Err: ErrInvalidAmount}
		}
	}
	return nil
}
