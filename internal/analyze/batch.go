// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// batched calls fn for every item in chunks of size. Calls within a chunk
// run concurrently; the next chunk starts only after the previous one has
// finished. Calls in a chunk share a group context, so a cancellation
// reaches calls still in flight and skips those not yet started. A
// cancelled context stops the remaining chunks and returns ctx.Err().
func batched[T, R any](ctx context.Context, items []T, size int, fn func(context.Context, T) R) ([]R, error) {
	if size <= 0 {
		size = 1
	}
	out := make([]R, len(items))
	for start := 0; start < len(items); start += size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+size, len(items))

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				out[i] = fn(gctx, items[i])
				return ctx.Err()
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
