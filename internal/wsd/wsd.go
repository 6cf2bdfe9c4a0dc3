// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wsd picks the sense of a target word that best fits its
// sentence, by gloss overlap between the target's candidate senses and
// the senses of every word in the sentence.
package wsd

import (
	"strings"

	"github.com/pdiddy/qtype/internal/lexicon"
	"github.com/pdiddy/qtype/pkg/types"
)

// Result is the outcome of a disambiguation: a chosen sense, or
// undetermined when the target word has no senses at all.
type Result struct {
	Sense *types.Sense

	// Candidates and Scores hold every candidate sense in lexicon order
	// and its overlap score. Both are empty for an undetermined result.
	Candidates []*types.Sense
	Scores     []int

	// Restricted is false when the part-of-speech filter matched nothing
	// and the unrestricted sense list was used instead.
	Restricted bool
}

// Undetermined is the result for a word without senses.
var Undetermined = Result{}

// Determined reports whether a sense was chosen.
func (r Result) Determined() bool {
	return r.Sense != nil
}

// Score returns the overlap score of the chosen sense, or -1.
func (r Result) Score() int {
	for i, c := range r.Candidates {
		if c == r.Sense {
			return r.Scores[i]
		}
	}
	return -1
}

// Disambiguator scores candidate senses against a context.
type Disambiguator struct {
	kb            lexicon.KnowledgeBase
	excludeTarget bool
}

// Option configures a Disambiguator.
type Option func(*Disambiguator)

// ExcludeTarget leaves the target word out of its own context. By
// default every context word, the target included, contributes glosses.
func ExcludeTarget(exclude bool) Option {
	return func(d *Disambiguator) { d.excludeTarget = exclude }
}

// New returns a Disambiguator backed by kb.
func New(kb lexicon.KnowledgeBase, opts ...Option) *Disambiguator {
	d := &Disambiguator{kb: kb}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Disambiguate returns the sense of target that best fits context.
//
// Candidates are the senses of target under pos, or all senses of target
// when pos matches none. Each candidate scores one point for every token
// of every gloss of every sense of every context word that also occurs
// among the tokens of the candidate's own gloss. Tokens are split on
// whitespace and compared exactly, so case and punctuation count.
// The highest score wins; on equal scores the candidate listed first by
// the lexicon wins. A target without any senses is Undetermined.
func (d *Disambiguator) Disambiguate(context, target string, pos types.POS) Result {
	candidates := d.kb.Senses(target, pos)
	restricted := true
	if len(candidates) == 0 && pos != types.POSAny {
		candidates = d.kb.Senses(target, types.POSAny)
		restricted = false
	}
	if len(candidates) == 0 {
		return Undetermined
	}

	contextTokens := d.contextGlossTokens(context, target)

	scores := make([]int, len(candidates))
	best := 0
	for i, c := range candidates {
		vocab := tokenSet(c.Gloss)
		for _, tok := range contextTokens {
			if vocab[tok] {
				scores[i]++
			}
		}
		if scores[i] > scores[best] {
			best = i
		}
	}

	return Result{
		Sense:      candidates[best],
		Candidates: candidates,
		Scores:     scores,
		Restricted: restricted,
	}
}

// contextGlossTokens concatenates the gloss tokens of every sense of
// every context word. Repeated words and repeated tokens are kept, so
// they count once per occurrence.
func (d *Disambiguator) contextGlossTokens(context, target string) []string {
	var tokens []string
	for _, w := range strings.Fields(context) {
		if d.excludeTarget && w == target {
			continue
		}
		for _, s := range d.kb.Senses(w, types.POSAny) {
			tokens = append(tokens, strings.Fields(s.Gloss)...)
		}
	}
	return tokens
}

func tokenSet(gloss string) map[string]bool {
	fields := strings.Fields(gloss)
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
