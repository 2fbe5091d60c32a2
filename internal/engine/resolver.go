package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"preventivo/internal/core"
)

// UnitResolution is the outcome of collapsing a work item's surfaces into
// a single billable quantity. It is always usable: malformed surfaces are
// reported in Errors and contribute zero rather than failing the caller.
type UnitResolution struct {
	Units    decimal.Decimal
	Label    string
	Errors   []string
	Warnings []string
}

// CostResolution carries the derived material and labor cost for one
// work item, both floored at zero.
type CostResolution struct {
	MaterialCost decimal.Decimal
	LaborCost    decimal.Decimal
	TotalCost    decimal.Decimal
	Errors       []string
}

// ResolveUnits sums the scalar relevant to the item's measurement type
// across all of its surfaces. It never fails: a surface missing its
// required field or carrying a negative value is reported and skipped,
// and a zero total is a warning, not an error.
func ResolveUnits(item core.WorkItem) UnitResolution {
	name := item.DisplayName()
	res := UnitResolution{Units: decimal.Zero, Label: item.MeasurementType.UnitLabel()}

	if !item.MeasurementType.Valid() {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown measurement type %q", name, item.MeasurementType))
		return res
	}

	for i, s := range item.Surfaces {
		v, field := surfaceScalar(s, item.MeasurementType)
		if v == nil {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: surface %d is missing %s", name, i+1, field))
			continue
		}
		if v.IsNegative() {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: surface %d has negative %s", name, i+1, field))
			continue
		}
		res.Units = res.Units.Add(*v)
	}

	if len(item.Surfaces) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: no surfaces measured", name))
	}
	if res.Units.IsZero() {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: resolved to zero %s", name, res.Label))
	}
	return res
}

// ResolveCost derives material and labor cost from the resolved units and
// the item's per-unit rates. Resolver errors propagate; negative products
// are floored at zero.
func ResolveCost(item core.WorkItem) CostResolution {
	u := ResolveUnits(item)
	material := flooredProduct(u.Units, item.MaterialCostPerUnit)
	labor := flooredProduct(u.Units, item.LaborCostPerUnit)
	return CostResolution{
		MaterialCost: material,
		LaborCost:    labor,
		TotalCost:    material.Add(labor),
		Errors:       u.Errors,
	}
}

// surfaceScalar picks the surface field required by the measurement type,
// returning the field name for diagnostics when it is absent.
func surfaceScalar(s core.Surface, mt core.MeasurementType) (*decimal.Decimal, string) {
	switch mt {
	case core.MeasureArea:
		return s.Area, "area"
	case core.MeasureLength:
		return s.Length, "length"
	case core.MeasureCount:
		return s.Count, "count"
	}
	return nil, string(mt)
}

func flooredProduct(units, rate decimal.Decimal) decimal.Decimal {
	p := units.Mul(rate)
	if p.IsNegative() {
		return decimal.Zero
	}
	return p
}
