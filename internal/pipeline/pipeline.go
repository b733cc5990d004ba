// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"ltrmap-core/model"
)

// Config controls the rendering pipeline.
type Config struct {
	Workers int // number of worker goroutines (>=1)
}

// ForEachElement runs fn over every element on a small worker pool. It stops
// feeding work on context cancellation and returns the first error seen
// (including ctx.Err()).
func ForEachElement(
	ctx context.Context,
	cfg Config,
	elements []*model.RepeatRegion,
	fn func(*model.RepeatRegion) error,
) error {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	jobs := make(chan *model.RepeatRegion, cfg.Workers*2)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(cfg.Workers)
	for w := 0; w < cfg.Workers; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case e, ok := <-jobs:
					if !ok {
						return
					}
					if err := fn(e); err != nil {
						fail(err)
					}
				}
			}
		}()
	}

feed:
	for _, e := range elements {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- e:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		fail(err)
	}
	mu.Lock()
	defer mu.Unlock()
	return firstErr
}
