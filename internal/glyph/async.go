package glyph

import (
	"context"
	"sync"
)

// Result is the outcome of one sampling request.
type Result struct {
	// Generation identifies the particle set that asked for this cloud.
	Generation uint64
	Points     []Point
	Err        error
}

// Go runs s.Sample on its own goroutine and delivers the result on out.
//
// The goroutine gives up on delivery once ctx is done, so a canceled
// context always lets it exit. wg, when non-nil, tracks the goroutine.
func Go(ctx context.Context, wg *sync.WaitGroup, s Sampler, req Request, generation uint64, out chan<- Result) {
	if wg != nil {
		wg.Add(1)
	}
	go func() {
		if wg != nil {
			defer wg.Done()
		}

		points, err := s.Sample(ctx, req)
		r := Result{Generation: generation, Points: points, Err: err}

		select {
		case out <- r:
		case <-ctx.Done():
		}
	}()
}
