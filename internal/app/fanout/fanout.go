// Package fanout runs one function across a slice of items with bounded
// concurrency. Outbound notifiers use it to deliver a snapshot to every
// configured endpoint at once.
package fanout

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Result is the outcome for one item: Value when Err is nil.
type Result[R any] struct {
	Value R
	Err   error
}

// Run calls fn for every item with at most maxWorkers calls in flight and
// returns the results in input order. maxWorkers below 1 means 1.
//
// Once ctx is done, items that have not started record ctx.Err() without
// calling fn. Calls already running are left to honor ctx themselves. Run
// returns after every item has settled.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) (R, error)) []Result[R] {
	results := make([]Result[R], len(items))
	slots := semaphore.NewWeighted(int64(max(maxWorkers, 1)))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Go(func() {
			if err := acquire(ctx, slots); err != nil {
				results[i].Err = err
				return
			}
			defer slots.Release(1)

			results[i].Value, results[i].Err = fn(ctx, item)
		})
	}
	wg.Wait()

	return results
}

// acquire takes a slot, refusing one that was granted after ctx ended.
func acquire(ctx context.Context, slots *semaphore.Weighted) error {
	if err := slots.Acquire(ctx, 1); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		slots.Release(1)
		return err
	}
	return nil
}

// Each is Run for functions without a value. It returns every failure
// joined, or nil.
func Each[T any](ctx context.Context, maxWorkers int, items []T, fn func(context.Context, T) error) error {
	return Errors(Run(ctx, maxWorkers, items, func(ctx context.Context, it T) (struct{}, error) {
		return struct{}{}, fn(ctx, it)
	}))
}

// Errors joins the non-nil errors in results, in order.
func Errors[R any](results []Result[R]) error {
	errs := make([]error, 0, len(results))
	for _, r := range results {
		errs = append(errs, r.Err)
	}
	return errors.Join(errs...)
}
