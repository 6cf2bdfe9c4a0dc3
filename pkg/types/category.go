// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// coarseLabels is the closed set of top-level question classes.
var coarseLabels = map[string]bool{
	"ABBR": true,
	"ENTY": true,
	"DESC": true,
	"HUM":  true,
	"LOC":  true,
	"NUM":  true,
}

// IsCoarseLabel reports whether label is one of ABBR, ENTY, DESC, HUM,
// LOC or NUM.
func IsCoarseLabel(label string) bool {
	return coarseLabels[label]
}

// Category is a question class defined by a set of keywords, e.g.
// "LOC:city" defined by "city town".
type Category struct {
	Label    string   `json:"label" yaml:"label"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// CategoryTable splits the categories into the coarse classes and the
// fine-grained subclasses. Only Fine takes part in similarity matching.
type CategoryTable struct {
	Coarse []Category `json:"coarse" yaml:"coarse"`
	Fine   []Category `json:"fine" yaml:"fine"`
}

// Add appends c to the coarse or fine group depending on its label.
func (t *CategoryTable) Add(c Category) {
	if IsCoarseLabel(c.Label) {
		t.Coarse = append(t.Coarse, c)
		return
	}
	t.Fine = append(t.Fine, c)
}

// Len returns the total number of categories in both groups.
func (t CategoryTable) Len() int {
	return len(t.Coarse) + len(t.Fine)
}

// Validate checks that every category has a label and at least one
// keyword, and that labels are unique across the table.
func (t CategoryTable) Validate() error {
	return ValidateCategories(append(append([]Category{}, t.Coarse...), t.Fine...))
}

// ValidateCategories applies the table invariants to a flat list.
func ValidateCategories(cats []Category) error {
	seen := make(map[string]bool, len(cats))
	for i, c := range cats {
		if c.Label == "" {
			return fmt.Errorf("category %d: empty label", i)
		}
		if len(c.Keywords) == 0 {
			return fmt.Errorf("category %s: no keywords", c.Label)
		}
		if seen[c.Label] {
			return fmt.Errorf("category %s: duplicate label", c.Label)
		}
		seen[c.Label] = true
	}
	return nil
}
