// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the qtype classifier.
// Lexicon entries (Sense, POS), the category table, per-question features
// and decisions, and configuration live here so that the lexicon, the
// pipeline stages and the CLI agree on one vocabulary.
package types

import "strings"

// POS is a WordNet part-of-speech code. The zero value means the lookup
// is not restricted to any part of speech.
type POS string

const (
	POSAny       POS = ""
	POSNoun      POS = "n"
	POSVerb      POS = "v"
	POSAdjective POS = "a"
	POSAdverb    POS = "r"
)

// Valid reports whether p is one of the known codes or unrestricted.
func (p POS) Valid() bool {
	switch p {
	case POSAny, POSNoun, POSVerb, POSAdjective, POSAdverb:
		return true
	}
	return false
}

// String returns the code, or "any" for the unrestricted value.
func (p POS) String() string {
	if p == POSAny {
		return "any"
	}
	return string(p)
}

// ParsePOSTag maps a Penn Treebank tag to a WordNet part of speech by its
// first letter: J adjective, N noun, V verb, R adverb. Any other tag,
// including the empty string, leaves the part of speech unrestricted.
func ParsePOSTag(tag string) POS {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return POSAny
	}
	switch tag[0] {
	case 'J':
		return POSAdjective
	case 'N':
		return POSNoun
	case 'V':
		return POSVerb
	case 'R':
		return POSAdverb
	default:
		return POSAny
	}
}

// Sense is one meaning of a word in the lexicon (a WordNet synset).
// Senses are owned by the lexicon that created them; callers hold
// pointers and never modify them.
type Sense struct {
	// ID is the synset name, e.g. "capital.n.03".
	ID string `json:"id" yaml:"id"`

	// POS is the synset's part of speech.
	POS POS `json:"pos" yaml:"pos"`

	// Gloss is the definition text.
	Gloss string `json:"gloss" yaml:"gloss"`
}

// SenseID returns s.ID, or "" for a nil sense.
func SenseID(s *Sense) string {
	if s == nil {
		return ""
	}
	return s.ID
}
