package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one element of a batch, at its input position.
type BatchItem[T any] struct {
	Index int
	Value T
	Err   error
}

// BatchResult keeps one item per input, in input order.
type BatchResult[T any] struct {
	Items []BatchItem[T]
}

func (r BatchResult[T]) Succeeded() []T {
	out := make([]T, 0, len(r.Items))
	for _, it := range r.Items {
		if it.Err == nil {
			out = append(out, it.Value)
		}
	}
	return out
}

func (r BatchResult[T]) Failed() []BatchItem[T] {
	var out []BatchItem[T]
	for _, it := range r.Items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}

// Err joins the failures, or returns nil when every item succeeded.
func (r BatchResult[T]) Err() error {
	var errs []error
	for _, it := range r.Items {
		if it.Err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", it.Index, it.Err))
		}
	}
	return errors.Join(errs...)
}

// runBatch calls fn for every input with at most limit calls in flight and
// returns once all of them settled. A failing item does not cancel the others.
func runBatch[In, Out any](ctx context.Context, limit int, inputs []In, fn func(context.Context, In) (Out, error)) BatchResult[Out] {
	items := make([]BatchItem[Out], len(inputs))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, in := range inputs {
		g.Go(func() error {
			v, err := fn(ctx, in)
			items[i] = BatchItem[Out]{Index: i, Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return BatchResult[Out]{Items: items}
}
