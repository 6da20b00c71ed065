// Package par instantiates the shared pipeline/reduce/exec algebra for the
// unconstrained, single-process case: items never need to cross a process
// boundary, so there's no capability bound beyond `any`, and reduction is
// two-stage (ReduceA per task, ReduceC once at the end — no ReduceB).
package par

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/exec"
	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
	"github.com/constellation-rs/amadeus-go/pkg/reduce"
	"github.com/constellation-rs/amadeus-go/pkg/workerpool"
)

// Stream, Pipe, Task and Sink are re-exported under par's own name so call
// sites read "par.Stream[T]" the way the original reads "ParallelStream",
// without requiring a second copy of the underlying types.
type (
	Stream[I any]    = pipeline.Stream[I]
	Pipe[I, O any]   = pipeline.Pipe[I, O]
	Task[I any]      = pipeline.Task[I]
	Sink[I, D any]   = pipeline.Sink[I, D]
	SizeHint         = pipeline.SizeHint
)

// Map, Filter, FlatMap, Inspect, Update, Cloned and Chain mirror the
// identically named Stream combinators in pipeline, re-exported so par
// code never has to import pipeline directly for everyday use.
func Map[I, O any](s Stream[I], f func(I) O) Stream[O] { return pipeline.MapStream(s, f) }
func Filter[I any](s Stream[I], pred func(I) bool) Stream[I] { return pipeline.FilterStream(s, pred) }
func FlatMap[I, O any](s Stream[I], f func(I) pipeline.Seq[O]) Stream[O] {
	return pipeline.FlatMapStream(s, f)
}
func Inspect[I any](s Stream[I], f func(I)) Stream[I] { return pipeline.InspectStream(s, f) }
func Update[I any](s Stream[I], f func(*I)) Stream[I] { return pipeline.UpdateStream(s, f) }
func Cloned[I any](s Stream[I]) Stream[I]             { return pipeline.ClonedStream(s) }
func Chain[I any](a, b Stream[I]) Stream[I]           { return pipeline.ChainStream(a, b) }

// ForEach and Drain re-export the supplemented side-effecting sinks.
func ForEach[I any](f func(I)) reduce.Factory[reduce.Reducer[I, struct{}]] { return reduce.ForEach(f) }
func Drain[I, O any](p Pipe[I, O]) Sink[I, struct{}]                      { return pipeline.Drain(p) }

// Run executes a stream end to end: every task is pipelined through pipe,
// folded locally by a fresh instance of tree's per-task reducer, and every
// task's partial result is merged by tree's single final reducer. inFlight
// bounds how many tasks may be running on the pool at once; <= 0 uses the
// pool's own reported parallelism.
func Run[I, M, A, D any](
	ctx context.Context,
	pool workerpool.Pool,
	stream Stream[I],
	pipe Pipe[I, M],
	tree reduce.Tree[M, A, D],
	inFlight int,
) (D, error) {
	var zero D
	partials, err := exec.Gather(ctx, pool, stream, pipe, tree.ReduceA(), inFlight)
	if err != nil {
		return zero, err
	}
	return exec.Finish(ctx, tree.ReduceC(), partials), nil
}

// RunSink is Run specialized for a plain Sink rather than a full reduction
// Tree — the common case of count/collect/for_each-style terminals that
// don't need a distinct merge/finish split.
func RunSink[I, M, D any](
	ctx context.Context,
	pool workerpool.Pool,
	stream Stream[I],
	pipe Pipe[I, M],
	sinkFactory func() Sink[M, D],
	merge func(a, b D) D,
	inFlight int,
) (D, error) {
	tree := reduce.Tree[M, D, D]{
		Stage: reduce.FactoryFunc[reduce.Reducer[M, D]](func() reduce.Reducer[M, D] {
			return &sinkReducer[M, D]{sink: sinkFactory()}
		}),
		Merge:  reduce.CombinerOver(merge),
		Finish: func(d D) D { return d },
	}
	return Run(ctx, pool, stream, pipe, tree, inFlight)
}

// sinkReducer adapts a one-shot Sink into a Reducer: Push is expected to
// be called exactly once per task (exec.Gather's contract), consuming the
// whole Seq via Forward in a single call.
type sinkReducer[I, D any] struct {
	sink Sink[I, D]
	out  D
}

func (r *sinkReducer[I, D]) Push(ctx context.Context, in pipeline.Seq[I]) {
	r.out = r.sink.Forward(ctx, in)
}
func (r *sinkReducer[I, D]) Output() D { return r.out }
