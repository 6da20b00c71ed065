// Package processpool simulates spawning work across a process boundary:
// closures still run in-process (Go has no portable way to ship a closure
// to a child process), but every result is round-tripped through sonic's
// JSON codec before being handed back, exercising exactly the
// encode/decode boundary a real process pool would impose. It exists so
// the executor and dist reducers can be tested against "my Done value
// really did cross a (de)serialization boundary" without standing up
// actual OS processes, which is outside this core's scope.
package processpool

import (
	"context"
	"runtime"

	"github.com/bytedance/sonic"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline/errs"
	"github.com/constellation-rs/amadeus-go/pkg/workerpool"
)

// ProcessPool runs work on a goroutine per spawn (bounded by a semaphore
// sized to Parallelism) and serializes every result through sonic.
type ProcessPool struct {
	sem chan struct{}
}

// New creates a ProcessPool simulating n worker processes. n<=0 defaults
// to runtime.NumCPU().
func New(n int) *ProcessPool {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return &ProcessPool{sem: make(chan struct{}, n)}
}

func (p *ProcessPool) Parallelism() int { return cap(p.sem) }

// Spawn runs work on its own goroutine, then marshals and immediately
// unmarshals its result with sonic to simulate the wire crossing. A
// marshal/unmarshal failure is reported as a SerializationError rather
// than silently passing the un-round-tripped value through.
func (p *ProcessPool) Spawn(ctx context.Context, work func(context.Context) (any, error)) (<-chan workerpool.Result, error) {
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, errs.Pool("spawn", ctx.Err())
	}

	resultCh := make(chan workerpool.Result, 1)
	go func() {
		defer func() { <-p.sem }()
		value, err := workerpool.RunGuarded(ctx, work)
		if err != nil {
			resultCh <- workerpool.Result{Err: err}
			close(resultCh)
			return
		}
		wire, err := sonic.Marshal(value)
		if err != nil {
			resultCh <- workerpool.Result{Err: errs.Serialization("marshal result", err)}
			close(resultCh)
			return
		}
		var decoded any
		if err := sonic.Unmarshal(wire, &decoded); err != nil {
			resultCh <- workerpool.Result{Err: errs.Serialization("unmarshal result", err)}
			close(resultCh)
			return
		}
		resultCh <- workerpool.Result{Value: decoded}
		close(resultCh)
	}()
	return resultCh, nil
}
