// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wsd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/qtype/internal/lexicon/lexicontest"
	"github.com/pdiddy/qtype/internal/wsd"
	"github.com/pdiddy/qtype/pkg/types"
)

func ids(senses []*types.Sense) []string {
	out := make([]string, len(senses))
	for i, s := range senses {
		out[i] = s.ID
	}
	return out
}

func TestDisambiguateCapital(t *testing.T) {
	d := wsd.New(lexicontest.New(t))

	res := d.Disambiguate("what is the capital of france", "capital", types.POSNoun)
	require.True(t, res.Determined())
	assert.Equal(t, "capital.n.03", res.Sense.ID)
	assert.True(t, res.Restricted)
	assert.Equal(t, []string{"capital.n.01", "capital.n.02", "capital.n.03"}, ids(res.Candidates))
	assert.Equal(t, []int{26, 27, 41}, res.Scores)
	assert.Equal(t, 41, res.Score())
}

func TestDisambiguateExcludeTarget(t *testing.T) {
	d := wsd.New(lexicontest.New(t), wsd.ExcludeTarget(true))

	res := d.Disambiguate("what is the capital of france", "capital", types.POSNoun)
	require.True(t, res.Determined())
	assert.Equal(t, "capital.n.03", res.Sense.ID)
	assert.Equal(t, []int{6, 8, 12}, res.Scores)
}

func TestDisambiguateTieKeepsFirst(t *testing.T) {
	d := wsd.New(lexicontest.New(t))

	// No context word has senses, so every candidate scores zero.
	res := d.Disambiguate("xyzzy plugh", "capital", types.POSNoun)
	require.True(t, res.Determined())
	assert.Equal(t, "capital.n.01", res.Sense.ID)
	assert.Equal(t, []int{0, 0, 0}, res.Scores)
}

func TestDisambiguateFallsBackToAllSenses(t *testing.T) {
	d := wsd.New(lexicontest.New(t))

	res := d.Disambiguate("what is the capital of france", "capital", types.POSVerb)
	require.True(t, res.Determined())
	assert.False(t, res.Restricted)
	assert.Equal(t,
		[]string{"capital.n.01", "capital.n.02", "capital.n.03", "capital.s.01"},
		ids(res.Candidates))
	assert.Equal(t, "capital.n.03", res.Sense.ID)
}

func TestDisambiguateAnyPOS(t *testing.T) {
	d := wsd.New(lexicontest.New(t))

	res := d.Disambiguate("capital", "capital", types.POSAny)
	require.True(t, res.Determined())
	assert.True(t, res.Restricted)
	assert.Len(t, res.Candidates, 4)
	assert.Equal(t, "capital.n.03", res.Sense.ID)
}

func TestDisambiguateUndetermined(t *testing.T) {
	lex := lexicontest.New(t)
	d := wsd.New(lex)

	tests := []struct {
		name   string
		target string
		pos    types.POS
	}{
		{"unknown word", "xyzzy", types.POSNoun},
		{"unknown word any pos", "xyzzy", types.POSAny},
		{"empty word", "", types.POSNoun},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Disambiguate("what is the xyzzy", tt.target, tt.pos)
			assert.False(t, res.Determined())
			assert.Equal(t, wsd.Undetermined, res)
			assert.Equal(t, -1, res.Score())
			assert.Empty(t, lex.Senses(tt.target, types.POSAny))
		})
	}
}

func TestDisambiguateChoiceIsACandidate(t *testing.T) {
	lex := lexicontest.New(t)
	d := wsd.New(lex)

	for _, word := range []string{"capital", "france", "number", "people", "is", "cities"} {
		t.Run(word, func(t *testing.T) {
			res := d.Disambiguate("how many people live in the capital cities of france", word, types.POSAny)
			require.True(t, res.Determined())
			assert.Contains(t, lex.Senses(word, types.POSAny), res.Sense)
			for _, s := range res.Scores {
				assert.LessOrEqual(t, s, res.Score())
			}
		})
	}
}
