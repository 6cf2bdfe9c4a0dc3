// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/qtype/internal/lexicon/lexicontest"
	"github.com/pdiddy/qtype/pkg/types"
)

func cat(label string, keywords ...string) types.Category {
	return types.Category{Label: label, Keywords: keywords}
}

func TestMatchCategoriesUniqueWinner(t *testing.T) {
	lex := lexicontest.New(t)
	region := lexicontest.Sense(t, lex, "region.n.03")

	res := MatchCategories(lex, region, []types.Category{
		cat("LOC", "location", "place"),
		cat("NUM", "number", "quantity"),
	})
	assert.Equal(t, []string{"LOC"}, res.Labels())
	assert.False(t, res.Tied())
	assert.InDelta(t, 0.5, res.Score, 1e-9)
	require.Len(t, res.Scored, 2)
	assert.InDelta(t, 1.0/7, res.Scored[1].Score, 1e-9)
}

func TestMatchCategoriesTakesBestKeyword(t *testing.T) {
	lex := lexicontest.New(t)
	region := lexicontest.Sense(t, lex, "region.n.03")

	// One exact keyword beats a category of several close ones.
	res := MatchCategories(lex, region, []types.Category{
		cat("LOC:other", "location", "place", "area"),
		cat("LOC:region", "number", "region"),
	})
	assert.Equal(t, []string{"LOC:region"}, res.Labels())
	assert.InDelta(t, 1.0, res.Score, 1e-9)
}

func TestMatchCategoriesReturnsAllTied(t *testing.T) {
	lex := lexicontest.New(t)
	region := lexicontest.Sense(t, lex, "region.n.03")

	res := MatchCategories(lex, region, []types.Category{
		cat("A", "location"),
		cat("B", "number"),
		cat("C", "place"),
	})
	assert.Equal(t, []string{"A", "C"}, res.Labels())
	assert.True(t, res.Tied())
	assert.InDelta(t, 0.5, res.Score, 1e-9)
}

func TestMatchCategoriesAllZero(t *testing.T) {
	lex := lexicontest.New(t)
	be := lexicontest.Sense(t, lex, "be.v.01")

	res := MatchCategories(lex, be, []types.Category{
		cat("LOC", "location", "place"),
		cat("NUM", "number", "quantity"),
		cat("X", "xyzzy"),
	})
	assert.Equal(t, []string{"LOC", "NUM", "X"}, res.Labels())
	assert.Zero(t, res.Score)
}

func TestMatchCategoriesProperties(t *testing.T) {
	lex := lexicontest.New(t)
	categories := []types.Category{
		cat("LOC:city", "city", "town"),
		cat("LOC:country", "country"),
		cat("LOC:other", "location", "place", "area"),
		cat("NUM:count", "number", "quantity"),
		cat("NUM:money", "wealth", "capital"),
		cat("HUM:ind", "person", "human"),
		cat("ENTY:other", "object", "entity"),
		cat("X:nonsense", "xyzzy"),
	}

	for _, id := range []string{
		"capital.n.03", "region.n.03", "city.n.01", "person.n.01",
		"number.n.02", "wealth.n.01", "entity.n.01", "be.v.01",
	} {
		t.Run(id, func(t *testing.T) {
			g := lexicontest.Sense(t, lex, id)
			res := MatchCategories(lex, g, categories)
			require.NotEmpty(t, res.Categories)
			require.Len(t, res.Scored, len(categories))

			top := res.Scored[0].Score
			for _, s := range res.Scored {
				if s.Score > top {
					top = s.Score
				}
			}
			assert.Equal(t, top, res.Score)

			tied := make(map[string]bool)
			for _, l := range res.Labels() {
				tied[l] = true
			}
			for _, s := range res.Scored {
				if tied[s.Label] {
					assert.Equal(t, res.Score, s.Score, s.Label)
				} else {
					assert.Less(t, s.Score, res.Score, s.Label)
				}
			}
		})
	}
}

func TestMatchCategoriesEmpty(t *testing.T) {
	lex := lexicontest.New(t)
	res := MatchCategories(lex, lexicontest.Sense(t, lex, "region.n.03"), nil)
	assert.Empty(t, res.Categories)
	assert.Zero(t, res.Score)
}

func TestResolveTie(t *testing.T) {
	lex := lexicontest.New(t)
	region := lexicontest.Sense(t, lex, "region.n.03")
	be := lexicontest.Sense(t, lex, "be.v.01")

	tests := []struct {
		name      string
		tied      []types.Category
		g         *types.Sense
		want      string
		score     float64
		wordsUsed int
	}{
		{
			name:      "higher average wins",
			tied:      []types.Category{cat("LOC:other", "place", "number"), cat("LOC:city", "location", "place")},
			g:         region,
			want:      "LOC:city",
			score:     0.5,
			wordsUsed: 2,
		},
		{
			name:      "keywords without senses are not averaged in",
			tied:      []types.Category{cat("A", "location", "xyzzy", "plugh"), cat("B", "place", "number")},
			g:         region,
			want:      "A",
			score:     0.5,
			wordsUsed: 1,
		},
		{
			name:      "equal averages prefer more words used",
			tied:      []types.Category{cat("A", "location", "xyzzy"), cat("B", "location", "place")},
			g:         region,
			want:      "B",
			score:     0.5,
			wordsUsed: 2,
		},
		{
			name:      "full tie keeps input order",
			tied:      []types.Category{cat("A", "location"), cat("B", "place")},
			g:         region,
			want:      "A",
			score:     0.5,
			wordsUsed: 1,
		},
		{
			name:      "nonsense category loses to zero-scoring real one",
			tied:      []types.Category{cat("X", "xyzzy"), cat("LOC", "location")},
			g:         be,
			want:      "LOC",
			score:     0,
			wordsUsed: 1,
		},
		{
			name:      "no contributing keywords anywhere",
			tied:      []types.Category{cat("X", "xyzzy"), cat("Y", "plugh")},
			g:         be,
			want:      "X",
			score:     0,
			wordsUsed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tb TieBreak
			require.NotPanics(t, func() { tb = ResolveTie(lex, tt.tied, tt.g) })
			assert.Equal(t, tt.want, tb.Category.Label)
			assert.InDelta(t, tt.score, tb.Score, 1e-9)
			assert.Equal(t, tt.wordsUsed, tb.WordsUsed)
		})
	}
}

func TestAverageScoreZeroWordsUsed(t *testing.T) {
	lex := lexicontest.New(t)
	region := lexicontest.Sense(t, lex, "region.n.03")

	tb := averageScore(lex, cat("X", "xyzzy", "plugh"), region)
	assert.Zero(t, tb.WordsUsed)
	assert.Zero(t, tb.Score)
	assert.False(t, math.IsNaN(tb.Score))
}

func TestResolveTieEmpty(t *testing.T) {
	lex := lexicontest.New(t)
	tb := ResolveTie(lex, nil, lexicontest.Sense(t, lex, "region.n.03"))
	assert.Equal(t, TieBreak{}, tb)
}
