package pipeline

import "context"

// Task is a unit of distributable work: a thing that, once handed to a
// worker, produces the items that belong to it. A Task is what crosses the
// boundary into the worker pool — never the Seq itself.
type Task[I any] interface {
	Items(ctx context.Context) Seq[I]
}

// TaskFunc adapts a plain function producing a Seq into a Task.
type TaskFunc[I any] func(ctx context.Context) Seq[I]

func (f TaskFunc[I]) Items(ctx context.Context) Seq[I] { return f(ctx) }

// Stream yields Tasks one at a time. It is the top-level handle a pipeline
// is built from: each Task is handed to the worker pool independently, and
// only their already-reduced outputs are ever combined on a single
// goroutine.
type Stream[I any] interface {
	SizeHint() SizeHint
	NextTask(ctx context.Context) (Task[I], bool)
}

// Tasks drains every remaining Task out of a Stream, in order. Mainly for
// tests and for executors that want to bound in-flight work by pre-counting.
func Tasks[I any](ctx context.Context, s Stream[I]) []Task[I] {
	var out []Task[I]
	for {
		t, ok := s.NextTask(ctx)
		if !ok {
			return out
		}
		out = append(out, t)
	}
}
