package category

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// outcome is the result of one batch item, stored at the item's input index.
type outcome[T any] struct {
	Name  string
	Value T
	Err   error
}

// runBatch calls fn for every name, with its index, on at most workers
// goroutines. Item errors never stop the batch; the returned slice is in
// input order.
func runBatch[T any](ctx context.Context, workers int, names []string, fn func(ctx context.Context, i int, name string) (T, error)) []outcome[T] {
	if workers < 1 {
		workers = 1
	}
	results := make([]outcome[T], len(names))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			results[i].Name = name
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Value, results[i].Err = fn(ctx, i, name)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// batchErr turns the failed outcomes into an error. A one-item batch
// returns that item's error unchanged.
func batchErr[T any](op string, results []outcome[T]) error {
	if len(results) == 1 {
		return results[0].Err
	}
	var failed []Failure
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, Failure{Name: r.Name, Err: r.Err})
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &BatchError{Op: op, Total: len(results), Failed: failed}
}
