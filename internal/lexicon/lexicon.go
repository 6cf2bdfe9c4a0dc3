// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexicon provides the lexical knowledge base the classifier
// queries: word senses with glosses, hypernym links and taxonomic path
// similarity. A Lexicon is built once from a Seed (read from YAML or from
// the SQLite Store) and is read-only afterwards, so a single instance can
// be shared by any number of goroutines.
package lexicon

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/pdiddy/qtype/pkg/types"
)

// KnowledgeBase is the read-only query surface used by the pipeline
// stages. Lexicon implements it; tests may supply their own.
type KnowledgeBase interface {
	// Senses returns the senses of word in native order, restricted to
	// pos unless pos is types.POSAny.
	Senses(word string, pos types.POS) []*types.Sense

	// Hypernyms returns the direct hypernyms of s in listed order.
	Hypernyms(s *types.Sense) []*types.Sense

	// PathSimilarity returns 1/(d+1) where d is the shortest is-a path
	// between a and b, or 0 when they share no ancestor.
	PathSimilarity(a, b *types.Sense) float64
}

// searchOrder is the part-of-speech order of an unrestricted lookup.
var searchOrder = []types.POS{types.POSNoun, types.POSVerb, types.POSAdjective, types.POSAdverb}

// Lexicon is an in-memory lexical knowledge base.
type Lexicon struct {
	byID       map[string]*types.Sense
	order      []*types.Sense
	index      map[string][]*types.Sense
	hypernyms  map[*types.Sense][]*types.Sense
	exceptions map[types.POS]map[string][]string

	ancestors  *lru.Cache[*types.Sense, map[*types.Sense]int]
	similarity *lru.Cache[sensePair, float64]
}

var _ KnowledgeBase = (*Lexicon)(nil)

// Option configures a Lexicon.
type Option func(*options)

type options struct {
	cacheSize int
}

// WithCacheSize bounds the similarity and ancestor caches.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// New builds a Lexicon from seed. Every synset must have a unique ID and
// a known part of speech, and every hypernym and word entry must refer to
// a synset of the seed.
func New(seed *Seed, opts ...Option) (*Lexicon, error) {
	o := options{cacheSize: types.DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}

	l := &Lexicon{
		byID:       make(map[string]*types.Sense, len(seed.Synsets)),
		order:      make([]*types.Sense, 0, len(seed.Synsets)),
		index:      make(map[string][]*types.Sense, len(seed.Words)),
		hypernyms:  make(map[*types.Sense][]*types.Sense),
		exceptions: make(map[types.POS]map[string][]string),
	}

	for _, ss := range seed.Synsets {
		if ss.ID == "" {
			return nil, fmt.Errorf("synset with empty id")
		}
		if _, dup := l.byID[ss.ID]; dup {
			return nil, fmt.Errorf("duplicate synset %s", ss.ID)
		}
		pos, err := normalizePOS(ss.POS)
		if err != nil {
			return nil, fmt.Errorf("synset %s: %w", ss.ID, err)
		}
		s := &types.Sense{ID: ss.ID, POS: pos, Gloss: ss.Gloss}
		l.byID[ss.ID] = s
		l.order = append(l.order, s)
	}

	for _, ss := range seed.Synsets {
		s := l.byID[ss.ID]
		for _, hid := range ss.Hypernyms {
			h, ok := l.byID[hid]
			if !ok {
				return nil, fmt.Errorf("synset %s: unknown hypernym %s", ss.ID, hid)
			}
			l.hypernyms[s] = append(l.hypernyms[s], h)
		}
	}

	for _, word := range seed.SortedWords() {
		lemma := normalizeLemma(word)
		if lemma == "" {
			return nil, fmt.Errorf("empty lemma in word list")
		}
		for _, id := range seed.Words[word] {
			s, ok := l.byID[id]
			if !ok {
				return nil, fmt.Errorf("word %q: unknown synset %s", word, id)
			}
			l.index[lemma] = append(l.index[lemma], s)
		}
	}

	for code, forms := range seed.Exceptions {
		pos, err := normalizePOS(string(code))
		if err != nil {
			return nil, fmt.Errorf("exceptions: %w", err)
		}
		if l.exceptions[pos] == nil {
			l.exceptions[pos] = make(map[string][]string, len(forms))
		}
		for inflected, bases := range forms {
			key := normalizeLemma(inflected)
			for _, b := range bases {
				l.exceptions[pos][key] = append(l.exceptions[pos][key], normalizeLemma(b))
			}
		}
	}

	var err error
	if l.ancestors, err = lru.New[*types.Sense, map[*types.Sense]int](o.cacheSize); err != nil {
		return nil, fmt.Errorf("creating ancestor cache: %w", err)
	}
	if l.similarity, err = lru.New[sensePair, float64](o.cacheSize); err != nil {
		return nil, fmt.Errorf("creating similarity cache: %w", err)
	}
	return l, nil
}

// Load reads a YAML seed file and builds a Lexicon from it.
func Load(path string, opts ...Option) (*Lexicon, error) {
	seed, err := ReadSeed(path)
	if err != nil {
		return nil, err
	}
	return New(seed, opts...)
}

// Senses returns the senses of word. Lookup lowercases the word, joins
// multi-word terms with underscores and reduces inflected forms to their
// base form through the exception lists and the suffix rules, for each
// part of speech in turn (noun, verb, adjective, adverb) unless pos
// restricts it to one. Within a part of speech senses keep their native
// order.
func (l *Lexicon) Senses(word string, pos types.POS) []*types.Sense {
	lemma := normalizeLemma(word)
	if lemma == "" || !pos.Valid() {
		return nil
	}
	posList := searchOrder
	if pos != types.POSAny {
		posList = []types.POS{pos}
	}

	var out []*types.Sense
	seen := make(map[*types.Sense]bool)
	for _, p := range posList {
		for _, form := range l.morphy(lemma, p) {
			for _, s := range l.index[form] {
				if s.POS == p && !seen[s] {
					seen[s] = true
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// Hypernyms returns the direct hypernyms of s.
func (l *Lexicon) Hypernyms(s *types.Sense) []*types.Sense {
	return l.hypernyms[s]
}

// Sense looks up a synset by ID.
func (l *Lexicon) Sense(id string) (*types.Sense, bool) {
	s, ok := l.byID[id]
	return s, ok
}

// Len returns the number of synsets.
func (l *Lexicon) Len() int {
	return len(l.order)
}

// Lemmas returns the number of distinct lemmas.
func (l *Lexicon) Lemmas() int {
	return len(l.index)
}

// hasForm reports whether form has at least one sense of part of speech p.
func (l *Lexicon) hasForm(form string, p types.POS) bool {
	for _, s := range l.index[form] {
		if s.POS == p {
			return true
		}
	}
	return false
}

// normalizeLemma lowercases word and replaces inner spaces with underscores.
func normalizeLemma(word string) string {
	return strings.Join(strings.Fields(strings.ToLower(word)), "_")
}
