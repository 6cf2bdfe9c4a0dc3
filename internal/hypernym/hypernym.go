// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hypernym generalizes a word sense by walking up its is-a
// chain a bounded number of steps.
package hypernym

import (
	"github.com/pdiddy/qtype/internal/lexicon"
	"github.com/pdiddy/qtype/pkg/types"
)

// Projector maps a sense to a more general ancestor.
type Projector struct {
	kb       lexicon.KnowledgeBase
	strategy types.ProjectionStrategy
}

// New returns a Projector using strategy. An empty or unknown strategy
// falls back to types.StrategyFirstPath.
func New(kb lexicon.KnowledgeBase, strategy types.ProjectionStrategy) *Projector {
	if !strategy.Valid() {
		strategy = types.StrategyFirstPath
	}
	return &Projector{kb: kb, strategy: strategy}
}

// Strategy returns the strategy in use.
func (p *Projector) Strategy() types.ProjectionStrategy {
	return p.strategy
}

// Project returns the ancestor of sense at most depth steps up. A depth
// of zero or less, or a sense without hypernyms, yields sense itself.
// When the chain is shorter than depth the topmost ancestor is returned,
// so the result is stable for every depth past the chain length.
func (p *Projector) Project(sense *types.Sense, depth int) *types.Sense {
	if sense == nil || depth <= 0 {
		return sense
	}
	if p.strategy == types.StrategyFrontier {
		return p.frontier(sense, depth)
	}

	closure := p.Closure(sense, depth)
	if len(closure) == 0 {
		return sense
	}
	return closure[len(closure)-1]
}

// Closure returns up to limit ancestors of sense reached by following
// the first listed hypernym at each step, nearest first. The walk stops
// at a root or on reaching a sense already visited. A limit of zero or
// less means no limit.
func (p *Projector) Closure(sense *types.Sense, limit int) []*types.Sense {
	var chain []*types.Sense
	seen := map[*types.Sense]bool{sense: true}
	for cur := sense; limit <= 0 || len(chain) < limit; {
		hyps := p.kb.Hypernyms(cur)
		if len(hyps) == 0 || seen[hyps[0]] {
			break
		}
		cur = hyps[0]
		seen[cur] = true
		chain = append(chain, cur)
	}
	return chain
}

// frontier expands all hypernyms one level per step and returns the
// first sense of the last level that was not empty.
func (p *Projector) frontier(sense *types.Sense, depth int) *types.Sense {
	result := sense
	level := []*types.Sense{sense}
	seen := map[*types.Sense]bool{sense: true}
	for step := 0; step < depth; step++ {
		var next []*types.Sense
		for _, s := range level {
			for _, h := range p.kb.Hypernyms(s) {
				if !seen[h] {
					seen[h] = true
					next = append(next, h)
				}
			}
		}
		if len(next) == 0 {
			break
		}
		result = next[0]
		level = next
	}
	return result
}
