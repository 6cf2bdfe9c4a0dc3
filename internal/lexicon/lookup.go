// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import (
	"context"
	"fmt"

	"github.com/pdiddy/qtype/pkg/types"
)

// LookupResult is one stored sense of a word with its direct hypernyms.
type LookupResult struct {
	types.Sense `yaml:",inline"`
	Word        string   `json:"word" yaml:"word"`
	Rank        int      `json:"rank" yaml:"rank"`
	Hypernyms   []string `json:"hypernyms,omitempty" yaml:"hypernyms,omitempty"`
}

// Lookup returns the stored senses of word in rank order, restricted to
// pos unless pos is types.POSAny. Unlike Lexicon.Senses it matches the
// lemma exactly and applies no inflection rules, so it shows what the
// database holds for that key.
func (s *Store) Lookup(ctx context.Context, word string, pos types.POS) ([]LookupResult, error) {
	lemma := normalizeLemma(word)
	if lemma == "" {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT s.rank, y.id, y.pos, y.gloss
		FROM senses s
		JOIN synsets y ON y.id = s.synset_id
		WHERE lower(s.word) = ?
		ORDER BY s.rank`, lemma)
	if err != nil {
		return nil, fmt.Errorf("querying senses of %q: %w", lemma, err)
	}

	var results []LookupResult
	for rows.Next() {
		var (
			r    LookupResult
			code string
		)
		if err := rows.Scan(&r.Rank, &r.ID, &code, &r.Gloss); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning sense: %w", err)
		}
		p, err := normalizePOS(code)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("synset %s: %w", r.ID, err)
		}
		if pos != types.POSAny && p != pos {
			continue
		}
		r.POS = p
		r.Word = lemma
		results = append(results, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range results {
		hyps, err := s.hypernymsOf(ctx, results[i].ID)
		if err != nil {
			return nil, err
		}
		results[i].Hypernyms = hyps
	}
	return results, nil
}

func (s *Store) hypernymsOf(ctx context.Context, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT hypernym_id FROM hypernyms WHERE synset_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("querying hypernyms of %s: %w", id, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("scanning hypernym: %w", err)
		}
		ids = append(ids, h)
	}
	return ids, rows.Err()
}
