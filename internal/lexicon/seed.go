// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"fmt"
	"os"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/qtype/pkg/types"
)

// Seed is the on-disk YAML form of a lexicon. It is the import format for
// the SQLite store and the export format for round trips.
type Seed struct {
	Synsets []SeedSynset `yaml:"synsets" json:"synsets"`

	// Words maps a lemma to its synset IDs in native sense order.
	Words map[string][]string `yaml:"words" json:"words"`

	// Exceptions maps a part of speech to irregular inflections and their
	// base forms, e.g. v: {is: [be]}.
	Exceptions map[types.POS]map[string][]string `yaml:"exceptions,omitempty" json:"exceptions,omitempty"`
}

// SeedSynset is one synset entry of a Seed.
type SeedSynset struct {
	ID        string   `yaml:"id" json:"id"`
	POS       string   `yaml:"pos" json:"pos"`
	Gloss     string   `yaml:"gloss" json:"gloss"`
	Hypernyms []string `yaml:"hypernyms,omitempty" json:"hypernyms,omitempty"`
}

// ReadSeed loads a Seed from a YAML file.
func ReadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lexicon seed: %w", err)
	}
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing lexicon seed %s: %w", path, err)
	}
	return &seed, nil
}

// WriteSeed saves seed to path as YAML.
func WriteSeed(path string, seed *Seed) error {
	data, err := yaml.Marshal(seed)
	if err != nil {
		return fmt.Errorf("marshaling lexicon seed: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// SortedWords returns the lemmas of s in lexical order.
func (s *Seed) SortedWords() []string {
	words := make([]string, 0, len(s.Words))
	for w := range s.Words {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// normalizePOS maps a seed part-of-speech code to a types.POS. WordNet
// adjective satellites ("s") are folded into adjectives.
func normalizePOS(code string) (types.POS, error) {
	if code == "s" {
		return types.POSAdjective, nil
	}
	p := types.POS(code)
	if p == types.POSAny || !p.Valid() {
		return "", fmt.Errorf("unknown part of speech %q", code)
	}
	return p, nil
}
