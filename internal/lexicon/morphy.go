// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"strings"

	"github.com/pdiddy/qtype/pkg/types"
)

type substitution struct {
	suffix, replace string
}

// substitutions are WordNet's detachment rules per part of speech.
var substitutions = map[types.POS][]substitution{
	types.POSNoun: {
		{"s", ""}, {"ses", "s"}, {"ves", "f"}, {"xes", "x"}, {"zes", "z"},
		{"ches", "ch"}, {"shes", "sh"}, {"men", "man"}, {"ies", "y"},
	},
	types.POSVerb: {
		{"s", ""}, {"ies", "y"}, {"es", "e"}, {"es", ""},
		{"ed", "e"}, {"ed", ""}, {"ing", "e"}, {"ing", ""},
	},
	types.POSAdjective: {
		{"er", ""}, {"est", ""}, {"er", "e"}, {"est", "e"},
	},
	types.POSAdverb: nil,
}

// morphy returns the base forms of form that have senses for p. An entry
// in the exception list short-circuits the rules. Otherwise the rules are
// applied once and the original form is checked alongside the results;
// if nothing matches the rules are reapplied until a form matches or no
// rule applies.
func (l *Lexicon) morphy(form string, p types.POS) []string {
	if bases, ok := l.exceptions[p][form]; ok {
		return l.filterForms(append([]string{form}, bases...), p)
	}

	forms := applyRules([]string{form}, p)
	if found := l.filterForms(append([]string{form}, forms...), p); len(found) > 0 {
		return found
	}
	for len(forms) > 0 {
		forms = applyRules(forms, p)
		if found := l.filterForms(forms, p); len(found) > 0 {
			return found
		}
	}
	return nil
}

func applyRules(forms []string, p types.POS) []string {
	var out []string
	for _, f := range forms {
		for _, sub := range substitutions[p] {
			if strings.HasSuffix(f, sub.suffix) {
				out = append(out, strings.TrimSuffix(f, sub.suffix)+sub.replace)
			}
		}
	}
	return out
}

func (l *Lexicon) filterForms(forms []string, p types.POS) []string {
	var out []string
	seen := make(map[string]bool, len(forms))
	for _, f := range forms {
		if f == "" || seen[f] || !l.hasForm(f, p) {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}
