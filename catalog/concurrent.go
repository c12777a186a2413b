package catalog

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentBatches limits how many detail batches are in flight at
// once. The catalog endpoint rate-limits aggressively; a small fan-out
// is enough to hide latency without tripping it.
const maxConcurrentBatches = 4

// AllItemDetails fetches details for any number of items by splitting
// them into MaxBatchSize chunks fetched concurrently. Result order
// follows the service's per-batch order, not the input order.
func (c *Client) AllItemDetails(ctx context.Context, items []ItemRef) ([]ItemDetails, error) {
	if len(items) <= MaxBatchSize {
		return c.ItemDetails(ctx, items)
	}

	var chunks [][]ItemRef
	for len(items) > 0 {
		n := min(len(items), MaxBatchSize)
		chunks = append(chunks, items[:n])
		items = items[n:]
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBatches)

	results := make([][]ItemDetails, len(chunks))
	var mu sync.Mutex

	for i, chunk := range chunks {
		g.Go(func() error {
			details, err := c.ItemDetails(ctx, chunk)
			if err != nil {
				return err
			}
			mu.Lock()
			results[i] = details
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []ItemDetails
	for _, details := range results {
		all = append(all, details...)
	}

	return all, nil
}
