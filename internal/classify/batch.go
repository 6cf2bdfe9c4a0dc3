// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/pdiddy/qtype/pkg/types"
)

// Item is one question of a batch with its pre-computed features.
type Item struct {
	Question string
	Features types.Features
}

// ClassifyBatch classifies items concurrently with at most workers
// goroutines and returns one decision per item in input order. A
// non-positive workers uses the classifier's configured worker count.
// Once ctx is done no further items start; those get a cancelled
// no-decision.
func ClassifyBatch(ctx context.Context, c *Classifier, items []Item, workers int) []types.Decision {
	if workers <= 0 {
		workers = c.cfg.Workers
	}
	decisions := make([]types.Decision, len(items))

	p := pool.New().WithMaxGoroutines(workers)
	for i, item := range items {
		if ctx.Err() != nil {
			decisions[i] = types.NoDecision(types.ReasonCancelled)
			continue
		}
		i, item := i, item
		p.Go(func() {
			if ctx.Err() != nil {
				decisions[i] = types.NoDecision(types.ReasonCancelled)
				return
			}
			decisions[i] = c.Classify(item.Question, item.Features)
		})
	}
	p.Wait()
	return decisions
}
