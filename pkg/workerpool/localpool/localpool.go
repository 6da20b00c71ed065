// Package localpool is the lightweight counterpart to threadpool: work
// runs synchronously on the calling goroutine, no queueing, no extra
// goroutines, mirroring the direct-function-call SimpleWorkerPool pattern
// for homogeneous, low-overhead operations.
package localpool

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/workerpool"
)

// LocalPool runs every spawned closure inline. Parallelism is always 1:
// callers that want concurrency should use threadpool instead.
type LocalPool struct{}

// New creates a LocalPool.
func New() *LocalPool { return &LocalPool{} }

func (p *LocalPool) Parallelism() int { return 1 }

// Spawn runs work immediately and returns an already-resolved Result
// channel, so callers written against the Pool interface don't need a
// special case for synchronous execution.
func (p *LocalPool) Spawn(ctx context.Context, work func(context.Context) (any, error)) (<-chan workerpool.Result, error) {
	resultCh := make(chan workerpool.Result, 1)
	value, err := workerpool.RunGuarded(ctx, work)
	resultCh <- workerpool.Result{Value: value, Err: err}
	close(resultCh)
	return resultCh, nil
}
