// Package catalog exposes the work-type lookup the engine queries when
// validating items. The catalog itself is owned elsewhere; the engine only
// depends on the WorkTypeCapability interface, and Memory is a seedable
// in-process implementation of it.
package catalog

import (
	"sort"
	"strings"

	"preventivo/internal/core"
)

// Details describes one work type known to the catalog.
type Details struct {
	Name               string
	DefaultMeasurement core.MeasurementType
	Subtypes           []string
}

// WorkTypeCapability is the catalog surface the engine consumes. The
// engine never caches results on the catalog's behalf.
type WorkTypeCapability interface {
	// ResolveMeasurementType returns the measurement type work items of
	// the given type default to. The category key lets implementations
	// apply per-category overrides; the memory catalog ignores it.
	ResolveMeasurementType(categoryKey, workType string) (core.MeasurementType, bool)

	// IsValidSubtype reports whether subtype is registered for workType.
	IsValidSubtype(workType, subtype string) bool

	// WorkTypeDetails returns the catalog entry for a work type.
	WorkTypeDetails(workType string) (Details, bool)
}

// Memory is an in-process WorkTypeCapability backed by a map.
type Memory struct {
	types map[string]Details
}

// NewMemory builds a catalog from a seed table. Keys are matched
// case-insensitively.
func NewMemory(seed []Details) *Memory {
	m := &Memory{types: make(map[string]Details, len(seed))}
	for _, d := range seed {
		m.types[strings.ToLower(d.Name)] = d
	}
	return m
}

// Default returns a catalog seeded with the standard remodeling work
// types.
func Default() *Memory {
	return NewMemory([]Details{
		{Name: "flooring", DefaultMeasurement: core.MeasureArea, Subtypes: []string{"hardwood", "laminate", "vinyl", "carpet", "tile"}},
		{Name: "painting", DefaultMeasurement: core.MeasureArea, Subtypes: []string{"interior", "exterior", "ceiling", "trim"}},
		{Name: "drywall", DefaultMeasurement: core.MeasureArea, Subtypes: []string{"hang", "finish", "repair"}},
		{Name: "tile", DefaultMeasurement: core.MeasureArea, Subtypes: []string{"floor", "wall", "backsplash", "shower"}},
		{Name: "baseboard", DefaultMeasurement: core.MeasureLength, Subtypes: []string{"install", "replace", "paint"}},
		{Name: "trim", DefaultMeasurement: core.MeasureLength, Subtypes: []string{"crown", "casing", "chair rail"}},
		{Name: "countertop", DefaultMeasurement: core.MeasureLength, Subtypes: []string{"granite", "quartz", "laminate", "butcher block"}},
		{Name: "fixtures", DefaultMeasurement: core.MeasureCount, Subtypes: []string{"faucet", "sink", "toilet", "light", "outlet"}},
		{Name: "doors", DefaultMeasurement: core.MeasureCount, Subtypes: []string{"interior", "exterior", "pocket", "bifold"}},
		{Name: "windows", DefaultMeasurement: core.MeasureCount, Subtypes: []string{"single hung", "double hung", "casement"}},
		{Name: "demolition", DefaultMeasurement: core.MeasureArea, Subtypes: []string{"wall", "floor", "full gut"}},
		{Name: "cabinets", DefaultMeasurement: core.MeasureCount, Subtypes: []string{"base", "wall", "pantry", "island"}},
	})
}

func (m *Memory) ResolveMeasurementType(categoryKey, workType string) (core.MeasurementType, bool) {
	d, ok := m.types[strings.ToLower(workType)]
	if !ok {
		return "", false
	}
	return d.DefaultMeasurement, true
}

func (m *Memory) IsValidSubtype(workType, subtype string) bool {
	d, ok := m.types[strings.ToLower(workType)]
	if !ok {
		return false
	}
	for _, s := range d.Subtypes {
		if strings.EqualFold(s, subtype) {
			return true
		}
	}
	return false
}

func (m *Memory) WorkTypeDetails(workType string) (Details, bool) {
	d, ok := m.types[strings.ToLower(workType)]
	return d, ok
}

// WorkTypes lists the registered type names in stable order.
func (m *Memory) WorkTypes() []string {
	names := make([]string, 0, len(m.types))
	for _, d := range m.types {
		names = append(names, d.Name)
	}
	sort.Strings(names)
	return names
}
