/*
batch.go - Parallel fan-out over independent records

PURPOSE:
  Distinct records share nothing but the read-only RateConfig, so a batch
  can be computed across a worker pool with no coordination. This is the
  ready-made fan-out for callers assessing a filing period's worth of
  records at once.

ORDERING:
  Results are returned in input order regardless of completion order, so
  batch output is as deterministic as single calculations.

CANCELLATION:
  Individual calculations are CPU-bound and never block, but a large
  batch can be abandoned via the context; unstarted inputs report the
  context error.
*/
package royalty

import (
	"context"
	"sync"
)

// BatchResult pairs one input's outcome with its position in the batch.
type BatchResult struct {
	Index  int
	Result *CalculationResult
	Err    error
}

// CalculateBatch evaluates inputs across at most workers goroutines.
// workers <= 0 means one worker per input.
func (e *Engine) CalculateBatch(ctx context.Context, inputs []Input, workers int) []BatchResult {
	results := make([]BatchResult, len(inputs))
	if len(inputs) == 0 {
		return results
	}
	if workers <= 0 || workers > len(inputs) {
		workers = len(inputs)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				result, err := e.Calculate(inputs[i])
				results[i] = BatchResult{Index: i, Result: result, Err: err}
			}
		}()
	}

dispatchLoop:
	for i := range inputs {
		select {
		case <-ctx.Done():
			for j := i; j < len(inputs); j++ {
				results[j] = BatchResult{Index: j, Err: ctx.Err()}
			}
			break dispatchLoop
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
