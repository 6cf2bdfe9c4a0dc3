// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns a category label to a question from its head
// word. The head word sense is disambiguated against the question,
// generalized along its hypernym chain and compared with the keywords of
// every category; ties are settled by averaged keyword similarity.
package classify

import (
	"fmt"
	"strings"

	"github.com/pdiddy/qtype/internal/hypernym"
	"github.com/pdiddy/qtype/internal/lexicon"
	"github.com/pdiddy/qtype/internal/wsd"
	"github.com/pdiddy/qtype/pkg/types"
)

// Classifier runs the classification pipeline for single questions. It
// holds no per-question state and is safe for concurrent use.
type Classifier struct {
	kb         lexicon.KnowledgeBase
	wsd        *wsd.Disambiguator
	projector  *hypernym.Projector
	categories []types.Category
	cfg        types.ClassifierConfig
}

// Option configures a Classifier.
type Option func(*types.ClassifierConfig)

// WithConfig replaces the classifier settings with cfg.
func WithConfig(cfg types.ClassifierConfig) Option {
	return func(c *types.ClassifierConfig) { *c = cfg }
}

// WithDepth sets the number of hypernym steps taken before matching.
func WithDepth(depth int) Option {
	return func(c *types.ClassifierConfig) { c.Depth = depth }
}

// WithStrategy sets the hypernym projection strategy.
func WithStrategy(s types.ProjectionStrategy) Option {
	return func(c *types.ClassifierConfig) { c.Strategy = s }
}

// WithExcludeTarget leaves the head word out of its own context during
// disambiguation.
func WithExcludeTarget(exclude bool) Option {
	return func(c *types.ClassifierConfig) { c.ExcludeTarget = exclude }
}

// New returns a Classifier matching questions against categories, which
// must be non-empty with unique labels and non-empty keyword lists.
func New(kb lexicon.KnowledgeBase, categories []types.Category, opts ...Option) (*Classifier, error) {
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories to match against")
	}
	if err := types.ValidateCategories(categories); err != nil {
		return nil, fmt.Errorf("validating categories: %w", err)
	}

	cfg := types.DefaultConfig().Classifier
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.ApplyDefaults()
	projector := hypernym.New(kb, cfg.Strategy)
	cfg.Strategy = projector.Strategy()

	return &Classifier{
		kb:         kb,
		wsd:        wsd.New(kb, wsd.ExcludeTarget(cfg.ExcludeTarget)),
		projector:  projector,
		categories: categories,
		cfg:        cfg,
	}, nil
}

// Config returns the effective settings.
func (c *Classifier) Config() types.ClassifierConfig {
	return c.cfg
}

// Categories returns the categories questions are matched against.
func (c *Classifier) Categories() []types.Category {
	return c.categories
}

// Trace records every stage of one classification.
type Trace struct {
	Question string         `json:"question" yaml:"question"`
	Features types.Features `json:"features" yaml:"features"`
	POS      types.POS      `json:"pos" yaml:"pos"`

	Disambiguation wsd.Result     `json:"-" yaml:"-"`
	Chain          []*types.Sense `json:"chain,omitempty" yaml:"chain,omitempty"`
	Generalized    *types.Sense   `json:"generalized,omitempty" yaml:"generalized,omitempty"`
	Match          *MatchResult   `json:"match,omitempty" yaml:"match,omitempty"`
	TieBreak       *TieBreak      `json:"tie_break,omitempty" yaml:"tie_break,omitempty"`

	Decision types.Decision `json:"decision" yaml:"decision"`
}

// Classify returns the decision for one question.
func (c *Classifier) Classify(question string, f types.Features) types.Decision {
	return c.Explain(question, f).Decision
}

// Explain classifies one question and keeps the intermediate results.
func (c *Classifier) Explain(question string, f types.Features) Trace {
	tr := Trace{Question: question, Features: f}

	head := strings.TrimSpace(f.HeadWord)
	switch {
	case head == "" || head == types.NullHeadWord:
		tr.Decision = types.NoDecision(types.ReasonNoHeadWord)
		return tr
	case strings.Contains(head, ":"):
		tr.Decision = types.NoDecision(types.ReasonCompoundHeadWord)
		return tr
	}

	tr.POS = types.ParsePOSTag(f.POSTag)
	tr.Disambiguation = c.wsd.Disambiguate(question, head, tr.POS)
	if !tr.Disambiguation.Determined() {
		tr.Decision = types.NoDecision(types.ReasonUndetermined)
		return tr
	}
	sense := tr.Disambiguation.Sense

	if c.cfg.Strategy == types.StrategyFirstPath && c.cfg.Depth > 0 {
		tr.Chain = c.projector.Closure(sense, c.cfg.Depth)
	}
	tr.Generalized = c.projector.Project(sense, c.cfg.Depth)

	match := MatchCategories(c.kb, tr.Generalized, c.categories)
	tr.Match = &match

	d := types.Decision{
		Sense:       sense.ID,
		Generalized: tr.Generalized.ID,
		Score:       match.Score,
		Tied:        match.Labels(),
	}

	winner := match.Categories[0]
	if match.Tied() {
		tb := ResolveTie(c.kb, match.Categories, tr.Generalized)
		tr.TieBreak = &tb
		winner = tb.Category
		d.TieBreakScore = tb.Score
		d.WordsUsed = tb.WordsUsed
	}

	if match.Score == 0 {
		d.Outcome = types.OutcomeNoDecision
		d.Reason = types.ReasonUninformative
	} else {
		d.Outcome = types.OutcomeDecided
		d.Label = winner.Label
	}
	tr.Decision = d
	return tr
}
