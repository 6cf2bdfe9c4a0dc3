// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"github.com/pdiddy/qtype/internal/lexicon"
	"github.com/pdiddy/qtype/pkg/types"
)

// TieBreak is the category chosen among tied matches, with its averaged
// keyword similarity and the number of keywords that had senses.
type TieBreak struct {
	Category  types.Category `json:"category" yaml:"category"`
	Score     float64        `json:"score" yaml:"score"`
	WordsUsed int            `json:"words_used" yaml:"words_used"`
}

// ResolveTie picks one category out of tied. Each category scores the
// mean, over its keywords that have senses, of the keyword's best path
// similarity to generalized; a category none of whose keywords has a
// sense scores 0. The highest score wins, then the larger WordsUsed,
// then the earlier position in tied. An empty tied returns the zero
// TieBreak.
func ResolveTie(kb lexicon.KnowledgeBase, tied []types.Category, generalized *types.Sense) TieBreak {
	var best TieBreak
	for i, c := range tied {
		cand := averageScore(kb, c, generalized)
		if i == 0 || cand.Score > best.Score ||
			(cand.Score == best.Score && cand.WordsUsed > best.WordsUsed) {
			best = cand
		}
	}
	return best
}

func averageScore(kb lexicon.KnowledgeBase, c types.Category, generalized *types.Sense) TieBreak {
	tb := TieBreak{Category: c}
	var sum float64
	for _, kw := range c.Keywords {
		if score, ok := keywordScore(kb, kw, generalized); ok {
			sum += score
			tb.WordsUsed++
		}
	}
	if tb.WordsUsed > 0 {
		tb.Score = sum / float64(tb.WordsUsed)
	}
	return tb
}
