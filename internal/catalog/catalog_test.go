package catalog

import (
	"testing"

	"preventivo/internal/core"
)

func TestDefaultCatalogResolve(t *testing.T) {
	c := Default()

	cases := []struct {
		workType string
		want     core.MeasurementType
		ok       bool
	}{
		{"flooring", core.MeasureArea, true},
		{"Flooring", core.MeasureArea, true}, // lookups are case-insensitive
		{"baseboard", core.MeasureLength, true},
		{"fixtures", core.MeasureCount, true},
		{"landscaping", "", false},
	}
	for _, tc := range cases {
		got, ok := c.ResolveMeasurementType("kitchen", tc.workType)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ResolveMeasurementType(%q) = (%q, %v), want (%q, %v)", tc.workType, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIsValidSubtype(t *testing.T) {
	c := Default()

	cases := []struct {
		workType, subtype string
		want              bool
	}{
		{"flooring", "vinyl", true},
		{"flooring", "Vinyl", true},
		{"flooring", "marble", false},
		{"landscaping", "sod", false}, // unknown type has no subtypes
	}
	for _, tc := range cases {
		if got := c.IsValidSubtype(tc.workType, tc.subtype); got != tc.want {
			t.Errorf("IsValidSubtype(%q, %q) = %v, want %v", tc.workType, tc.subtype, got, tc.want)
		}
	}
}

func TestWorkTypeDetails(t *testing.T) {
	c := Default()
	d, ok := c.WorkTypeDetails("countertop")
	if !ok {
		t.Fatal("countertop should be in the default catalog")
	}
	if d.DefaultMeasurement != core.MeasureLength {
		t.Fatalf("countertop measurement = %q", d.DefaultMeasurement)
	}
	if len(d.Subtypes) == 0 {
		t.Fatal("countertop should list subtypes")
	}
}

func TestSeededCatalog(t *testing.T) {
	c := NewMemory([]Details{{Name: "decking", DefaultMeasurement: core.MeasureArea, Subtypes: []string{"composite"}}})
	if mt, ok := c.ResolveMeasurementType("", "decking"); !ok || mt != core.MeasureArea {
		t.Fatalf("seeded type not resolvable: %q %v", mt, ok)
	}
	if got := c.WorkTypes(); len(got) != 1 || got[0] != "decking" {
		t.Fatalf("WorkTypes() = %v", got)
	}
}
