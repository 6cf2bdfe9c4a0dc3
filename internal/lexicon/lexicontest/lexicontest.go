// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicontest provides a small WordNet-shaped fixture lexicon for
// tests of the lexicon and of the pipeline stages built on it.
//
// The fixture covers the "what is the capital of france" example: the
// noun "capital" has a financial, a wealth and a city sense, the city
// sense generalizes through city, municipality, urban area and
// geographical area to region, and the keywords location, place, number
// and quantity sit at known distances from region.
package lexicontest

import (
	_ "embed"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/qtype/internal/lexicon"
	"github.com/pdiddy/qtype/pkg/types"
)

//go:embed fixture.yaml
var fixture []byte

// Seed returns a fresh copy of the fixture seed.
func Seed(tb testing.TB) *lexicon.Seed {
	tb.Helper()
	var seed lexicon.Seed
	if err := yaml.Unmarshal(fixture, &seed); err != nil {
		tb.Fatalf("parsing fixture lexicon: %v", err)
	}
	return &seed
}

// New builds a Lexicon from the fixture.
func New(tb testing.TB) *lexicon.Lexicon {
	tb.Helper()
	lex, err := lexicon.New(Seed(tb))
	if err != nil {
		tb.Fatalf("building fixture lexicon: %v", err)
	}
	return lex
}

// WriteSeed writes the fixture YAML into dir and returns its path.
func WriteSeed(tb testing.TB, dir string) string {
	tb.Helper()
	path := filepath.Join(dir, "lexicon.yaml")
	if err := os.WriteFile(path, fixture, 0o644); err != nil {
		tb.Fatal(err)
	}
	return path
}

// Sense returns the fixture sense with the given ID or fails the test.
func Sense(tb testing.TB, lex *lexicon.Lexicon, id string) *types.Sense {
	tb.Helper()
	s, ok := lex.Sense(id)
	if !ok {
		tb.Fatalf("fixture has no synset %s", id)
	}
	return s
}
