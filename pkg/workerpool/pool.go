// Package workerpool defines the boundary the executor runs tasks across:
// a minimal Pool interface plus three concrete implementations (thread,
// local, simulated-process) good enough to exercise the executor in tests.
// Production deployments are expected to bring their own Pool — the core
// never chooses an encoding or a concurrency strategy for them.
package workerpool

import (
	"context"
	"fmt"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline/errs"
)

// Result is what a spawned unit of work resolves to.
type Result struct {
	Value any
	Err   error
}

// RunGuarded calls work and recovers a panic from it, translating the
// panic into a worker error instead of letting it take down the pool's
// goroutine. Every Pool implementation runs closures through this so a
// user-supplied closure's panic always surfaces as a Result.Err.
func RunGuarded(ctx context.Context, work func(context.Context) (any, error)) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Worker("task execute", "", fmt.Errorf("panic: %v", r))
		}
	}()
	return work(ctx)
}

// Pool runs closures concurrently, the Go rendering of the original
// ProcessPool/ThreadPool/LocalPool trait family: spawn<F, T>() -> Future.
// Go has no portable closure-serialization story, so unlike ProcessPool
// this interface never requires work to be Serialize — process-style pools
// serialize at their own boundary instead (see processpool).
type Pool interface {
	// Parallelism reports how many units of work this pool can run at
	// once; the executor uses it only to size its own in-flight bound,
	// never to bypass the pool's own scheduling.
	Parallelism() int

	// Spawn runs work and returns a channel that receives one Result once
	// work completes and is then closed. If the work cannot be handed to
	// the pool (for example ctx is cancelled first), Spawn returns an
	// error instead of a channel.
	Spawn(ctx context.Context, work func(context.Context) (any, error)) (<-chan Result, error)
}
