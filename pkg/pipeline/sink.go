package pipeline

import "context"

// Sink drains a Seq entirely and folds it down to a single Done value. A
// Sink owns the full lifetime of the sequence it's given; nothing observes
// items after Forward returns.
type Sink[I, D any] interface {
	Forward(ctx context.Context, in Seq[I]) D
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc[I, D any] func(ctx context.Context, in Seq[I]) D

func (f SinkFunc[I, D]) Forward(ctx context.Context, in Seq[I]) D { return f(ctx, in) }

// SinkOverPipe runs a Pipe ahead of a Sink, so a ParallelPipe and a
// ParallelSink can be composed into a single Sink over the pipe's input
// type.
func SinkOverPipe[I, M, D any](pipe Pipe[I, M], sink Sink[M, D]) Sink[I, D] {
	return SinkFunc[I, D](func(ctx context.Context, in Seq[I]) D {
		return sink.Forward(ctx, pipe.Apply(ctx, in))
	})
}

// Drain runs a Pipe purely for its side effects and discards its output,
// the supplemented "pipe sink adapter" from the original algebra: it lets
// any Pipe double as a terminal Sink with Done = struct{}.
func Drain[I, O any](p Pipe[I, O]) Sink[I, struct{}] {
	return SinkFunc[I, struct{}](func(ctx context.Context, in Seq[I]) struct{} {
		p.Apply(ctx, in)(func(O) bool { return true })
		return struct{}{}
	})
}
