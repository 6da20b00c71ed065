// Package exec implements the executor: it pulls tasks from a Stream one
// at a time, hands each to a workerpool.Pool bounded by an in-flight
// count, reduces each task's items locally inside the worker, and
// collects every task's partial result. It never materializes every task
// up front — an unbounded Stream is handled exactly like a bounded one.
// The first error from any task cancels every task still in flight and is
// the only error returned.
package exec

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
	"github.com/constellation-rs/amadeus-go/pkg/pipeline/errs"
	"github.com/constellation-rs/amadeus-go/pkg/reduce"
	"github.com/constellation-rs/amadeus-go/pkg/workerpool"
)

// DefaultInFlight is used when callers pass inFlight <= 0: it matches the
// pool's own reported parallelism, since queuing more tasks than the pool
// can run concurrently only grows memory without raising throughput.
func DefaultInFlight(pool workerpool.Pool) int {
	if n := pool.Parallelism(); n > 0 {
		return n
	}
	return 1
}

// Gather runs reduceA once per task (each instance fresh from the
// factory, pushed with that task's items after pipe has transformed them)
// on the pool, and returns every task's Output in the order tasks
// completed. It is the single shared step both par.Run (two-stage) and
// dist.Run (three-stage) build their own final merge on top of.
func Gather[I, M, A any](
	ctx context.Context,
	pool workerpool.Pool,
	stream pipeline.Stream[I],
	pipe pipeline.Pipe[I, M],
	reduceA reduce.Factory[reduce.Reducer[M, A]],
	inFlight int,
) ([]A, error) {
	if inFlight <= 0 {
		inFlight = DefaultInFlight(pool)
	}

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(inFlight))

	var (
		mu      sync.Mutex
		results []A
	)

dispatch:
	for {
		if gctx.Err() != nil {
			break
		}
		task, ok := stream.NextTask(gctx)
		if !ok {
			break
		}
		if err := sem.Acquire(gctx, 1); err != nil {
			break dispatch
		}

		task := task
		g.Go(func() error {
			defer sem.Release(1)

			resultCh, err := pool.Spawn(gctx, func(spawnCtx context.Context) (any, error) {
				items := pipe.Apply(spawnCtx, task.Items(spawnCtx))
				r := reduceA.Make()
				r.Push(spawnCtx, items)
				if fallible, ok := any(r).(interface{ Err() error }); ok {
					if err := fallible.Err(); err != nil {
						return nil, err
					}
				}
				return r.Output(), nil
			})
			if err != nil {
				return errs.Pool("spawn task", err)
			}
			res, ok := <-resultCh
			if !ok {
				return nil
			}
			if res.Err != nil {
				return errs.Worker("task execute", "", res.Err)
			}
			a, ok := res.Value.(A)
			if !ok {
				return errs.Serialization("task result type assertion", fmt.Errorf("got %T", res.Value))
			}
			mu.Lock()
			results = append(results, a)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Finish runs a single Reducer over every gathered partial result and
// returns its Output — the ReduceC step, run once, on whatever goroutine
// calls Finish.
func Finish[A, D any](ctx context.Context, reduceC reduce.Reducer[A, D], partials []A) D {
	reduceC.Push(ctx, pipeline.Of(partials))
	return reduceC.Output()
}
