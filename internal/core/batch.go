package core

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// closeAllConcurrency bounds how many holders CloseAll closes at once,
// matching the fan-out limit the teacher uses for its own bounded cleanup
// operations.
const closeAllConcurrency = 10

// CloseAll closes every holder in holders concurrently, up to
// closeAllConcurrency at a time, returning the first error encountered (if
// any); every holder still runs its Close to completion regardless of
// earlier failures, since an un-closed holder at shutdown is a leaked
// connection. It is the shape of work a pool allocator performs during
// shutdown, even though the allocator itself is out of scope for this
// module.
func CloseAll(ctx context.Context, holders []*Holder) error {
	var g errgroup.Group
	g.SetLimit(closeAllConcurrency)

	for _, h := range holders {
		h := h
		g.Go(func() error {
			if err := h.Close(); err != nil {
				return fmt.Errorf("close holder %s: %w", h.ManagementID(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
