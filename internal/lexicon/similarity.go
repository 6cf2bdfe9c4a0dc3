// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexicon

import "github.com/pdiddy/qtype/pkg/types"

// sensePair is an unordered pair of senses used as a cache key.
type sensePair struct {
	a, b *types.Sense
}

func pairOf(a, b *types.Sense) sensePair {
	if b.ID < a.ID {
		a, b = b, a
	}
	return sensePair{a: a, b: b}
}

// PathSimilarity scores a and b by the shortest path through a common
// hypernym: 1/(da+db+1), where da and db are the is-a distances from a
// and b to the closest shared ancestor. Identical senses score 1.0;
// senses without a shared ancestor (including senses of different
// parts of speech) score 0.0. Results are memoised.
func (l *Lexicon) PathSimilarity(a, b *types.Sense) float64 {
	if a == nil || b == nil {
		return 0
	}
	if a == b {
		return 1
	}
	key := pairOf(a, b)
	if v, ok := l.similarity.Get(key); ok {
		return v
	}

	da, db := l.ancestorDistances(a), l.ancestorDistances(b)
	if len(db) < len(da) {
		da, db = db, da
	}
	best := -1
	for s, d1 := range da {
		if d2, ok := db[s]; ok && (best < 0 || d1+d2 < best) {
			best = d1 + d2
		}
	}

	sim := 0.0
	if best >= 0 {
		sim = 1 / float64(best+1)
	}
	l.similarity.Add(key, sim)
	return sim
}

// ancestorDistances maps s and every ancestor of s to its shortest is-a
// distance from s, following all hypernyms breadth-first.
func (l *Lexicon) ancestorDistances(s *types.Sense) map[*types.Sense]int {
	if d, ok := l.ancestors.Get(s); ok {
		return d
	}
	dist := map[*types.Sense]int{s: 0}
	frontier := []*types.Sense{s}
	for len(frontier) > 0 {
		var next []*types.Sense
		for _, cur := range frontier {
			for _, h := range l.hypernyms[cur] {
				if _, seen := dist[h]; seen {
					continue
				}
				dist[h] = dist[cur] + 1
				next = append(next, h)
			}
		}
		frontier = next
	}
	l.ancestors.Add(s, dist)
	return dist
}
