package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/hapfel1/fscheckup/pkg/types"
)

// Runner streams engine runs so a consumer can render results as they
// arrive. Each Start supersedes the previous run: results still in
// flight from an older run are discarded instead of delivered.
// In-flight OS calls are not interrupted; their results are simply
// dropped on arrival.
type Runner struct {
	gen atomic.Uint64
}

// NewRunner returns a Runner for repeated, refreshable runs.
func NewRunner() *Runner {
	return &Runner{}
}

// Start launches every check of the engine on its own goroutine and
// returns a channel of results, closed when the run completes. Checks
// are independent read-only queries, so the concurrent schedule cannot
// change outcomes — only arrival order.
//
// The consumer must either drain the channel or cancel ctx;
// abandoning the channel with a live context leaks the delivery
// goroutine on its blocked send.
func (r *Runner) Start(ctx context.Context, e *Engine) <-chan types.DiagnosticResult {
	token := r.gen.Add(1)
	out := make(chan types.DiagnosticResult)

	go func() {
		defer close(out)

		inner := make(chan types.DiagnosticResult, 16)
		var wg sync.WaitGroup
		for _, c := range e.Checks() {
			c := c
			wg.Add(1)
			go func() {
				defer wg.Done()
				for _, res := range c.Run(ctx) {
					inner <- res
				}
			}()
		}
		go func() {
			wg.Wait()
			close(inner)
		}()

		for res := range inner {
			if r.gen.Load() != token {
				// superseded by a newer run: drain and drop
				continue
			}
			select {
			case out <- res:
			case <-ctx.Done():
				// consumer gone; keep draining so workers finish
			}
		}
	}()
	return out
}

// Generation identifies the current run. A consumer that buffers
// results can compare generations to notice its run was superseded.
func (r *Runner) Generation() uint64 {
	return r.gen.Load()
}
