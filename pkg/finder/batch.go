package finder

import (
	"context"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

// BatchResult is the outcome of one postcode in a batch, Err set when the lookup failed.
type BatchResult struct {
	Postcode string
	Nearest  *Nearest
	Err      error
}

// FindBatch looks up every code with a pool of workers. Each lookup loads the data
// afresh, exactly as FindNearest does on its own.
func (f *Finder) FindBatch(ctx context.Context, codes []string, numWorkers int) map[string]BatchResult {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	var wg sync.WaitGroup
	// prevent blocking when there's a temporary imbalance between producers and consumers
	jobs := make(chan string, numWorkers*2)
	results := make(chan BatchResult, numWorkers*2)

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for code := range jobs {
				nearest, err := f.FindNearest(ctx, code)
				if err != nil {
					f.log.Warn("batch lookup failed", zap.String("postcode", code), zap.Error(err))
				}
				results <- BatchResult{Postcode: code, Nearest: nearest, Err: err}
			}
		}()
	}

	// only close results after every worker has returned
	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for _, code := range codes {
			select {
			case jobs <- code:
			case <-ctx.Done():
				return
			}
		}
	}()

	out := make(map[string]BatchResult, len(codes))
	for res := range results {
		out[res.Postcode] = res
	}
	return out
}
