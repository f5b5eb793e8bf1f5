// Package async runs independent per-item work with bounded concurrency.
//
// Respondent reports are computed independently of each other, so the
// pipeline fans them out over a fixed number of workers. Failures are
// collected, not short-circuited: one broken respondent must not stop the
// rest of the batch.
package async

import (
	"context"
	"errors"
	"sync"
)

// ForEach runs fn for every item using at most workers goroutines. Every
// item is attempted even when earlier ones fail; the accumulated errors are
// joined in item order. Dispatching stops early only when ctx is canceled,
// in which case ctx.Err is included in the result.
func ForEach[T any](ctx context.Context, workers int, items []T, fn func(context.Context, T) error) error {
	if workers < 1 {
		return ErrNoWorkers
	}
	if len(items) == 0 {
		return nil
	}
	if workers > len(items) {
		workers = len(items)
	}

	indexes := make(chan int)
	errs := make([]error, len(items))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				errs[i] = fn(ctx, items[i])
			}
		}()
	}

	var canceled error
dispatch:
	for i := range items {
		select {
		case <-ctx.Done():
			canceled = ctx.Err()
			break dispatch
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	return errors.Join(append(errs, canceled)...)
}

// Map is ForEach with results: out[i] corresponds to items[i]. Results of
// failed items are left at their zero value.
func Map[T, U any](ctx context.Context, workers int, items []T, fn func(context.Context, T) (U, error)) ([]U, error) {
	out := make([]U, len(items))
	err := ForEach(ctx, workers, indexesOf(items), func(ctx context.Context, i int) error {
		u, err := fn(ctx, items[i])
		if err != nil {
			return err
		}
		out[i] = u
		return nil
	})
	return out, err
}

func indexesOf[T any](items []T) []int {
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	return idx
}
