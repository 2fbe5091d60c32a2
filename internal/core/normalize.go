package core

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Historical estimate documents carried measurements both as a nested
// surfaces list and as flat fields on the work item itself. The flat form
// is normalized into canonical surfaces here, at the ingestion boundary,
// so the computation core only ever sees one representation.

type (
	rawWorkItem struct {
		WorkItem

		// Legacy flat measurement fields, discarded after normalization.
		Area        *decimal.Decimal `json:"area,omitempty"`
		Length      *decimal.Decimal `json:"length,omitempty"`
		Count       *decimal.Decimal `json:"count,omitempty"`
		WasteFactor *decimal.Decimal `json:"waste_factor,omitempty"`
	}

	rawCategory struct {
		Key       string        `json:"key"`
		Name      string        `json:"name"`
		WorkItems []rawWorkItem `json:"work_items"`
	}

	rawEstimate struct {
		Categories []rawCategory `json:"categories"`
		Settings   Settings      `json:"settings"`
	}
)

// DecodeEstimate reads a JSON estimate document and returns the
// normalized domain form.
func DecodeEstimate(r io.Reader) (Estimate, error) {
	var raw rawEstimate
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Estimate{}, fmt.Errorf("decode estimate: %w", err)
	}
	est := Estimate{
		Categories: make([]Category, 0, len(raw.Categories)),
		Settings:   raw.Settings,
	}
	for _, rc := range raw.Categories {
		cat := Category{Key: rc.Key, Name: rc.Name, WorkItems: make([]WorkItem, 0, len(rc.WorkItems))}
		for _, ri := range rc.WorkItems {
			cat.WorkItems = append(cat.WorkItems, normalizeRawItem(ri))
		}
		est.Categories = append(est.Categories, cat)
	}
	return est, nil
}

// NormalizeWorkItem folds legacy flat measurement fields into the
// canonical surfaces list. When the item already has surfaces the flat
// fields are dropped; otherwise a single synthetic surface carries them.
func NormalizeWorkItem(item WorkItem, area, length, count, wasteFactor *decimal.Decimal) WorkItem {
	if len(item.Surfaces) > 0 {
		return item
	}
	if area == nil && length == nil && count == nil {
		return item
	}
	item.Surfaces = []Surface{{
		Area:        area,
		Length:      length,
		Count:       count,
		WasteFactor: wasteFactor,
	}}
	return item
}

func normalizeRawItem(ri rawWorkItem) WorkItem {
	return NormalizeWorkItem(ri.WorkItem, ri.Area, ri.Length, ri.Count, ri.WasteFactor)
}
