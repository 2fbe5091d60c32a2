package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"preventivo/internal/core"
	"preventivo/internal/log"
)

// aggregateResult is the shared product of one traversal over the
// estimate. Totals, category breakdowns, and payment details all derive
// from the same instance so their intermediate rounding can never
// diverge.
type aggregateResult struct {
	materialCost  decimal.Decimal
	laborBefore   decimal.Decimal
	laborCost     decimal.Decimal
	laborDiscount decimal.Decimal
	subtotal      decimal.Decimal
	wasteCost     decimal.Decimal
	taxAmount     decimal.Decimal
	markupAmount  decimal.Decimal
	miscFeesTotal decimal.Decimal
	transportFee  decimal.Decimal
	total         decimal.Decimal

	perCategory []categoryTotals

	errors   []string
	warnings []string
}

type categoryTotals struct {
	name        string
	itemCount   int
	material    decimal.Decimal
	laborBefore decimal.Decimal
}

// aggregate performs the single pass over all categories and work items.
// Per-item material and labor are rounded to cents as they are produced;
// everything downstream is arithmetic over already-rounded components, so
// the rendered sum invariant holds exactly.
func (e *Engine) aggregate() *aggregateResult {
	r := &aggregateResult{laborDiscount: e.clampedDiscount()}

	var deadline time.Time
	if e.opts.Timeout > 0 {
		deadline = e.now().Add(e.opts.Timeout)
	}

	if err := e.settings.Validate(); err != nil {
		r.errors = append(r.errors, err.Error())
	}

	timedOut := false
	for _, cat := range e.categories {
		ct := categoryTotals{name: cat.Name}
		if err := cat.Validate(); err != nil {
			r.errors = append(r.errors, err.Error())
		}
		for _, item := range cat.WorkItems {
			if !deadline.IsZero() && e.now().After(deadline) {
				calcErr := &core.CalculationError{
					Subject: "aggregation",
					Reason:  fmt.Sprintf("exceeded %s timeout, remaining items contribute zero", e.opts.Timeout),
				}
				r.errors = append(r.errors, calcErr.Error())
				timedOut = true
				break
			}

			ct.itemCount++
			item, ok := e.checkItem(cat.Key, item, r)
			if !ok {
				continue
			}

			u := ResolveUnits(item)
			r.errors = append(r.errors, u.Errors...)
			r.warnings = append(r.warnings, u.Warnings...)

			material := flooredProduct(u.Units, item.MaterialCostPerUnit).RoundBank(2)
			labor := flooredProduct(u.Units, item.LaborCostPerUnit).RoundBank(2)
			ct.material = ct.material.Add(material)
			ct.laborBefore = ct.laborBefore.Add(labor)
		}
		r.perCategory = append(r.perCategory, ct)
		r.materialCost = r.materialCost.Add(ct.material)
		r.laborBefore = r.laborBefore.Add(ct.laborBefore)
		if timedOut {
			break
		}
	}

	one := decimal.NewFromInt(1)
	r.laborCost = r.laborBefore.Mul(one.Sub(r.laborDiscount)).RoundBank(2)
	r.subtotal = r.materialCost.Add(r.laborCost)

	for _, w := range e.settings.WasteEntries {
		if w.SurfaceCost.IsNegative() || w.WasteFactor.IsNegative() {
			continue
		}
		r.wasteCost = r.wasteCost.Add(w.SurfaceCost.Mul(w.WasteFactor))
	}
	r.wasteCost = r.wasteCost.RoundBank(2)

	// Tax and markup are both percentages of the same pre-fee base;
	// misc fees and transportation are flat additions on top.
	base := r.subtotal.Add(r.wasteCost)
	r.taxAmount = base.Mul(e.settings.TaxRate).RoundBank(2)
	r.markupAmount = base.Mul(e.settings.Markup).RoundBank(2)
	for _, f := range e.settings.MiscFees {
		if f.Amount.IsNegative() {
			continue
		}
		r.miscFeesTotal = r.miscFeesTotal.Add(f.Amount)
	}
	r.miscFeesTotal = r.miscFeesTotal.RoundBank(2)
	r.transportFee = e.settings.TransportationFee.RoundBank(2)
	if r.transportFee.IsNegative() {
		r.transportFee = decimal.Zero
	}
	r.total = base.Add(r.taxAmount).Add(r.markupAmount).Add(r.miscFeesTotal).Add(r.transportFee)

	return r
}

// checkItem validates a work item against the catalog. Repairs with a
// safe default produce warnings; items with no safe interpretation are
// reported and contribute zero.
func (e *Engine) checkItem(categoryKey string, item core.WorkItem, r *aggregateResult) (core.WorkItem, bool) {
	name := item.DisplayName()

	if err := item.Validate(); err != nil {
		r.errors = append(r.errors, fmt.Sprintf("%s: %v", name, err))
		return item, false
	}

	if !item.MeasurementType.Valid() {
		mt, ok := e.catalog.ResolveMeasurementType(categoryKey, item.Type)
		if !ok {
			cerr := &core.ConsistencyError{Reason: fmt.Sprintf("%s: measurement type %q is invalid and the catalog has no default for %q", name, item.MeasurementType, item.Type)}
			r.errors = append(r.errors, cerr.Error())
			return item, false
		}
		r.warnings = append(r.warnings, fmt.Sprintf("%s: invalid measurement type %q coerced to %q", name, item.MeasurementType, mt))
		e.logger.Warn("coerced invalid measurement type",
			log.FieldOperation, log.OpRepair,
			log.FieldWorkItem, name,
			"from", string(item.MeasurementType),
			"to", string(mt))
		item.MeasurementType = mt
	}

	if item.Type != "" {
		if _, known := e.catalog.WorkTypeDetails(item.Type); !known {
			msg := fmt.Sprintf("%s: work type %q is not in the catalog", name, item.Type)
			if e.opts.StrictValidation {
				r.errors = append(r.errors, (&core.ConsistencyError{Reason: msg}).Error())
				return item, false
			}
			r.warnings = append(r.warnings, msg)
		} else if item.Subtype != "" && !e.catalog.IsValidSubtype(item.Type, item.Subtype) {
			msg := fmt.Sprintf("%s: subtype %q is not valid for %q", name, item.Subtype, item.Type)
			if e.opts.StrictValidation {
				r.errors = append(r.errors, (&core.ConsistencyError{Reason: msg}).Error())
				return item, false
			}
			r.warnings = append(r.warnings, msg)
		}
	}

	return item, true
}

func (e *Engine) clampedDiscount() decimal.Decimal {
	d := e.settings.LaborDiscount
	one := decimal.NewFromInt(1)
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(one) {
		return one
	}
	return d
}
