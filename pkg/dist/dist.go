// Package dist instantiates the shared algebra for the distributed case:
// item and Done types must satisfy ProcessSend (the Go rendering of the
// original's Send + Serialize + Deserialize bound), and reduction runs in
// three stages — ReduceA per task, ReduceB per simulated worker process
// (so only one value per process crosses the wire), ReduceC once at the
// end across processes.
package dist

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/exec"
	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
	"github.com/constellation-rs/amadeus-go/pkg/reduce"
	"github.com/constellation-rs/amadeus-go/pkg/workerpool"

	"github.com/constellation-rs/amadeus-go/internal/codec"
)

// ProcessSend is re-exported from internal/codec so dist call sites never
// need to import it directly.
type ProcessSend = codec.ProcessSend

type (
	Stream[I any]  = pipeline.Stream[I]
	Pipe[I, O any] = pipeline.Pipe[I, O]
	Task[I any]    = pipeline.Task[I]
	Sink[I, D any] = pipeline.Sink[I, D]
)

func Map[I, O any](s Stream[I], f func(I) O) Stream[O]        { return pipeline.MapStream(s, f) }
func Filter[I any](s Stream[I], pred func(I) bool) Stream[I]  { return pipeline.FilterStream(s, pred) }
func Inspect[I any](s Stream[I], f func(I)) Stream[I]         { return pipeline.InspectStream(s, f) }
func Chain[I any](a, b Stream[I]) Stream[I]                   { return pipeline.ChainStream(a, b) }

// Run executes a stream across tasksPerProcess-sized batches of tasks,
// each batch running on one pool.Spawn call so exactly one merged, wire-
// round-tripped A value comes back per simulated process (ReduceB), and
// finally merges every process's A across the whole run (ReduceC).
func Run[I any, M any, A ProcessSend, D any](
	ctx context.Context,
	pool workerpool.Pool,
	stream Stream[I],
	pipe Pipe[I, M],
	tree reduce.Tree[M, A, D],
	blankA func() A,
	tasksPerProcess int,
	inFlight int,
) (D, error) {
	var zero D
	if tasksPerProcess <= 0 {
		tasksPerProcess = 1
	}
	batched := batchStream[I]{upstream: stream, batchSize: tasksPerProcess}

	perProcess, err := exec.Gather[batch[I], batch[I], A](
		ctx, pool, &batched, pipeline.IdentityPipe[batch[I]](),
		batchReducerFactory[I, M, A](pipe, tree, blankA),
		inFlight,
	)
	if err != nil {
		return zero, err
	}
	return exec.Finish(ctx, tree.ReduceC(), perProcess), nil
}

// batch is one simulated process's share of tasks.
type batch[I any] struct {
	tasks []pipeline.Task[I]
}

func (b batch[I]) Items(ctx context.Context) pipeline.Seq[batch[I]] {
	return pipeline.Of([]batch[I]{b})
}

// batchStream groups an upstream Stream's tasks into fixed-size batches,
// each batch itself exposed as a single Task.
type batchStream[I any] struct {
	upstream  Stream[I]
	batchSize int
}

func (s *batchStream[I]) SizeHint() pipeline.SizeHint { return pipeline.SizeHint{} }

func (s *batchStream[I]) NextTask(ctx context.Context) (pipeline.Task[batch[I]], bool) {
	var tasks []pipeline.Task[I]
	for len(tasks) < s.batchSize {
		t, ok := s.upstream.NextTask(ctx)
		if !ok {
			break
		}
		tasks = append(tasks, t)
	}
	if len(tasks) == 0 {
		return nil, false
	}
	b := batch[I]{tasks: tasks}
	return pipeline.TaskFunc[batch[I]](b.Items), true
}

// batchReducerFactory builds the ReduceB+wire-roundtrip reducer run once
// per batch/process: it runs ReduceA over every task in the batch, merges
// them locally with tree.Merge (ReduceB), and round-trips the merged value
// through ProcessSend to simulate it crossing back from a worker process.
func batchReducerFactory[I, M any, A ProcessSend, D any](
	pipe Pipe[I, M],
	tree reduce.Tree[M, A, D],
	blankA func() A,
) reduce.Factory[reduce.Reducer[batch[I], A]] {
	return reduce.FactoryFunc[reduce.Reducer[batch[I], A]](func() reduce.Reducer[batch[I], A] {
		return &batchReducer[I, M, A, D]{pipe: pipe, tree: tree, blankA: blankA}
	})
}

type batchReducer[I, M any, A ProcessSend, D any] struct {
	pipe   Pipe[I, M]
	tree   reduce.Tree[M, A, D]
	blankA func() A
	out    A
	err    error
}

func (r *batchReducer[I, M, A, D]) Push(ctx context.Context, in pipeline.Seq[batch[I]]) {
	merger := r.tree.Merge.Make()
	in(func(b batch[I]) bool {
		for _, task := range b.tasks {
			select {
			case <-ctx.Done():
				return false
			default:
			}
			items := r.pipe.Apply(ctx, task.Items(ctx))
			a := r.tree.Stage.Make()
			a.Push(ctx, items)
			merger.Push(ctx, pipeline.Of([]A{a.Output()}))
		}
		return true
	})
	merged := merger.Output()
	wired, err := codec.Roundtrip(merged, r.blankA)
	if err != nil {
		r.err = err
		return
	}
	r.out = wired
}

func (r *batchReducer[I, M, A, D]) Output() A { return r.out }

// Err reports a serialization failure from the wire round trip; exec.Gather
// checks for this optional method on every Reducer it runs and, when
// present and non-nil, treats it as that task's error instead of its
// Output.
func (r *batchReducer[I, M, A, D]) Err() error { return r.err }
