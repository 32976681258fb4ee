package pool

import (
	"context"
	"sync"
)

// WorkerFunc processes one item and may return an error. Errors do not stop
// the pool; remaining items are still processed.
type WorkerFunc[T any] func(ctx context.Context, item T) error

// Run feeds items to numWorkers concurrent workers and returns the errors
// that occurred, in no particular order. Cancelling the context stops feeding
// new items; in-flight items finish.
func Run[T any](ctx context.Context, items []T, numWorkers int, workerFunc WorkerFunc[T]) []error {
	if numWorkers < 1 {
		numWorkers = 1
	}

	tasks := make(chan T)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if ctx.Err() != nil {
					return
				}
				if err := workerFunc(ctx, item); err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case tasks <- item:
		case <-ctx.Done():
			break feed
		}
	}
	close(tasks)
	wg.Wait()

	return errs
}
