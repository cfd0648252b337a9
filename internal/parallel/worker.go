// Package parallel runs independent tasks on a bounded set of goroutines.
//
// The dataset store uses it to load every source file concurrently at
// startup. Results always come back in input order so load reports and
// errors are deterministic regardless of scheduling.
package parallel

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// WorkerPool manages a pool of goroutines for parallel processing
type WorkerPool struct {
	numWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewWorkerPool creates a worker pool bound to ctx. numWorkers <= 0 means one per CPU.
func NewWorkerPool(ctx context.Context, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		numWorkers: numWorkers,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// NumWorkers returns the number of goroutines the pool starts per call
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// Context returns the pool context, cancelled by Close or the parent.
func (wp *WorkerPool) Context() context.Context {
	return wp.ctx
}

// ProcessIndexed executes work items in parallel while preserving order.
// Items not started before the pool is cancelled keep the zero result.
func ProcessIndexed[T, R any](
	wp *WorkerPool,
	items []T,
	worker func(int, T) R,
) []R {
	if len(items) == 0 {
		return nil
	}

	workers := wp.numWorkers
	if workers > len(items) {
		workers = len(items)
	}

	itemCh := make(chan indexedItem[T], len(items))
	resultCh := make(chan indexedResult[R], len(items))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range itemCh {
				select {
				case <-wp.ctx.Done():
					return
				default:
					resultCh <- indexedResult[R]{
						index:  item.index,
						result: worker(item.index, item.value),
					}
				}
			}
		}()
	}

	go func() {
		defer close(itemCh)
		for i, item := range items {
			select {
			case <-wp.ctx.Done():
				return
			case itemCh <- indexedItem[T]{index: i, value: item}:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]R, len(items))
	for result := range resultCh {
		results[result.index] = result.result
	}

	return results
}

// ForEach runs fn for every item and joins the errors in input order.
// A panicking task is reported as an error instead of crashing the process.
// Cancellation before every task ran is reported as the context error.
func ForEach[T any](wp *WorkerPool, items []T, fn func(context.Context, int, T) error) error {
	ran := ProcessIndexed(wp, items, func(i int, item T) (res taskResult) {
		defer func() {
			if r := recover(); r != nil {
				res = taskResult{done: true, err: fmt.Errorf("task %d panicked: %v", i, r)}
			}
		}()
		return taskResult{done: true, err: fn(wp.ctx, i, item)}
	})

	var errs []error
	for _, r := range ran {
		if r.err != nil {
			errs = append(errs, r.err)
		}
	}
	for _, r := range ran {
		if !r.done {
			errs = append(errs, wp.ctx.Err())
			break
		}
	}
	return errors.Join(errs...)
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	wp.cancel()
}

type taskResult struct {
	done bool
	err  error
}

// indexedItem holds an item with its index
type indexedItem[T any] struct {
	index int
	value T
}

// indexedResult holds a result with its index
type indexedResult[R any] struct {
	index  int
	result R
}
