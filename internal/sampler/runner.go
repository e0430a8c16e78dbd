// internal/sampler/runner.go
package sampler

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits a Result per cycle on the
// provided channel. One goroutine per node. No overlap. No retries.
func (s *Sampler) Run(ctx context.Context, out chan<- Result) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			out <- s.SampleOnce()
		}
	}
}
