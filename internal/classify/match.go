// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"github.com/pdiddy/qtype/internal/lexicon"
	"github.com/pdiddy/qtype/pkg/types"
)

// CategoryScore is the match score of one category.
type CategoryScore struct {
	Label string  `json:"label" yaml:"label"`
	Score float64 `json:"score" yaml:"score"`
}

// MatchResult holds the categories tied at the best score. It is built
// fresh for every question.
type MatchResult struct {
	Categories []types.Category `json:"categories" yaml:"categories"`
	Score      float64          `json:"score" yaml:"score"`

	// Scored lists every input category with its score, in input order.
	Scored []CategoryScore `json:"scored,omitempty" yaml:"scored,omitempty"`
}

// Labels returns the labels of the tied categories.
func (m MatchResult) Labels() []string {
	labels := make([]string, len(m.Categories))
	for i, c := range m.Categories {
		labels[i] = c.Label
	}
	return labels
}

// Tied reports whether more than one category reached the best score.
func (m MatchResult) Tied() bool {
	return len(m.Categories) > 1
}

// MatchCategories scores every category against the generalized sense
// and returns all categories that reach the highest score.
//
// A category scores the best path similarity between generalized and
// any sense of any of its keywords. Keywords without senses contribute
// nothing. When no category reaches a positive score every category is
// returned tied at 0.
func MatchCategories(kb lexicon.KnowledgeBase, generalized *types.Sense, categories []types.Category) MatchResult {
	var res MatchResult
	if len(categories) == 0 {
		return res
	}

	res.Scored = make([]CategoryScore, len(categories))
	for i, c := range categories {
		score := categoryScore(kb, c, generalized)
		res.Scored[i] = CategoryScore{Label: c.Label, Score: score}
		if i == 0 || score > res.Score {
			res.Score = score
		}
	}
	for i, c := range categories {
		if res.Scored[i].Score == res.Score {
			res.Categories = append(res.Categories, c)
		}
	}
	return res
}

func categoryScore(kb lexicon.KnowledgeBase, c types.Category, generalized *types.Sense) float64 {
	var best float64
	for _, kw := range c.Keywords {
		if score, ok := keywordScore(kb, kw, generalized); ok && score > best {
			best = score
		}
	}
	return best
}

// keywordScore returns the best path similarity between generalized and
// any sense of keyword. ok is false when keyword has no senses.
func keywordScore(kb lexicon.KnowledgeBase, keyword string, generalized *types.Sense) (best float64, ok bool) {
	for _, s := range kb.Senses(keyword, types.POSAny) {
		ok = true
		if sim := kb.PathSimilarity(s, generalized); sim > best {
			best = sim
		}
	}
	return best, ok
}
