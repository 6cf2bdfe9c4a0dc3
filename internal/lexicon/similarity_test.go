package lexicon_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/qtype/internal/lexicon"
	"github.com/pdiddy/qtype/internal/lexicon/lexicontest"
)

func TestPathSimilarity(t *testing.T) {
	lex := lexicontest.New(t)

	tests := []struct {
		a, b string
		want float64
	}{
		{"region.n.03", "region.n.03", 1},
		{"region.n.03", "location.n.01", 0.5},
		{"region.n.03", "place.n.02", 0.5},
		{"capital.n.03", "region.n.03", 1.0 / 6},
		{"region.n.03", "quantity.n.01", 1.0 / 7},
		{"region.n.03", "number.n.02", 1.0 / 8},
		{"number.n.02", "quantity.n.01", 0.25},
		// person reaches physical_entity in two steps through causal_agent.
		{"person.n.01", "location.n.01", 0.25},
		{"france.n.02", "person.n.01", 0.25},
		// Verbs without hypernyms share no ancestor.
		{"be.v.01", "be.v.02", 0},
		{"be.v.01", "region.n.03", 0},
		{"capital.s.01", "region.n.03", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"~"+tt.b, func(t *testing.T) {
			a := lexicontest.Sense(t, lex, tt.a)
			b := lexicontest.Sense(t, lex, tt.b)
			assert.InDelta(t, tt.want, lex.PathSimilarity(a, b), 1e-9)
			assert.InDelta(t, tt.want, lex.PathSimilarity(b, a), 1e-9, "similarity must be symmetric")
		})
	}
}

func TestPathSimilarityNil(t *testing.T) {
	lex := lexicontest.New(t)
	region := lexicontest.Sense(t, lex, "region.n.03")
	assert.Zero(t, lex.PathSimilarity(nil, region))
	assert.Zero(t, lex.PathSimilarity(region, nil))
}

func TestPathSimilarityHypernymCycle(t *testing.T) {
	seed := &lexicon.Seed{Synsets: []lexicon.SeedSynset{
		{ID: "a.n.01", POS: "n", Hypernyms: []string{"b.n.01"}},
		{ID: "b.n.01", POS: "n", Hypernyms: []string{"a.n.01"}},
		{ID: "c.n.01", POS: "n", Hypernyms: []string{"b.n.01"}},
	}}
	lex, err := lexicon.New(seed)
	require.NoError(t, err)

	a, _ := lex.Sense("a.n.01")
	c, _ := lex.Sense("c.n.01")
	assert.InDelta(t, 1.0/3, lex.PathSimilarity(a, c), 1e-9)
}

func TestPathSimilarityConcurrentReads(t *testing.T) {
	lex, err := lexicon.New(lexicontest.Seed(t), lexicon.WithCacheSize(4))
	require.NoError(t, err)
	region := lexicontest.Sense(t, lex, "region.n.03")
	keywords := lex.Senses("location", "")
	keywords = append(keywords, lex.Senses("number", "")...)
	keywords = append(keywords, lex.Senses("quantity", "")...)

	want := make([]float64, len(keywords))
	for i, k := range keywords {
		want[i] = lex.PathSimilarity(region, k)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, k := range keywords {
				assert.InDelta(t, want[i], lex.PathSimilarity(k, region), 1e-9)
			}
		}()
	}
	wg.Wait()
}
