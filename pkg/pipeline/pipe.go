package pipeline

import "context"

// SizeHint mirrors a Stream's (or Task's) size estimate: Lower is a
// guaranteed minimum, Upper/HasUpper describe a known maximum when one
// exists (HasUpper false for combinators like FlatMap that cannot bound
// their output).
type SizeHint struct {
	Lower    int
	Upper    int
	HasUpper bool
}

// Pipe transforms a Seq of Input items into a Seq of Output items, lazily.
// Apply is called once per task and owns draining `in` itself, so a Pipe is
// free to buffer, batch or drop items, but must never read from `in` after
// its own returned Seq has stopped being iterated.
type Pipe[I, O any] interface {
	Apply(ctx context.Context, in Seq[I]) Seq[O]
}

// PipeFunc adapts a plain function to the Pipe interface.
type PipeFunc[I, O any] func(ctx context.Context, in Seq[I]) Seq[O]

func (f PipeFunc[I, O]) Apply(ctx context.Context, in Seq[I]) Seq[O] { return f(ctx, in) }

// IdentityPipe passes items through unchanged.
func IdentityPipe[I any]() Pipe[I, I] {
	return PipeFunc[I, I](func(ctx context.Context, in Seq[I]) Seq[I] { return in })
}

// MapPipe applies f to every item.
func MapPipe[I, O any](f func(I) O) Pipe[I, O] {
	return PipeFunc[I, O](func(ctx context.Context, in Seq[I]) Seq[O] {
		return func(yield func(O) bool) {
			in(func(item I) bool { return yield(f(item)) })
		}
	})
}

// FilterPipe keeps only items for which pred returns true.
func FilterPipe[I any](pred func(I) bool) Pipe[I, I] {
	return PipeFunc[I, I](func(ctx context.Context, in Seq[I]) Seq[I] {
		return func(yield func(I) bool) {
			in(func(item I) bool {
				if !pred(item) {
					return true
				}
				return yield(item)
			})
		}
	})
}

// FlatMapPipe expands each item into zero or more output items via f, which
// returns a Seq. FlatMap cannot bound its output count, matching spec's
// SizeHint rule for the combinator.
func FlatMapPipe[I, O any](f func(I) Seq[O]) Pipe[I, O] {
	return PipeFunc[I, O](func(ctx context.Context, in Seq[I]) Seq[O] {
		return func(yield func(O) bool) {
			stop := false
			in(func(item I) bool {
				if stop {
					return false
				}
				f(item)(func(out O) bool {
					if !yield(out) {
						stop = true
						return false
					}
					return true
				})
				return !stop
			})
		}
	})
}

// FlatMapSyncPipe is the common case of FlatMapPipe where f returns a slice
// rather than a lazy Seq.
func FlatMapSyncPipe[I, O any](f func(I) []O) Pipe[I, O] {
	return FlatMapPipe[I, O](func(item I) Seq[O] { return Of(f(item)) })
}

// FilterMapSyncPipe combines Filter and Map: f returns (output, true) to
// keep an item (mapped), or (_, false) to drop it.
func FilterMapSyncPipe[I, O any](f func(I) (O, bool)) Pipe[I, O] {
	return PipeFunc[I, O](func(ctx context.Context, in Seq[I]) Seq[O] {
		return func(yield func(O) bool) {
			in(func(item I) bool {
				out, ok := f(item)
				if !ok {
					return true
				}
				return yield(out)
			})
		}
	})
}

// InspectPipe runs f for its side effect on every item, passing items
// through unchanged.
func InspectPipe[I any](f func(I)) Pipe[I, I] {
	return MapPipe[I, I](func(item I) I {
		f(item)
		return item
	})
}

// UpdatePipe mutates each item in place via f (I must be a pointer or other
// reference type for the mutation to be externally visible) and passes it
// through.
func UpdatePipe[I any](f func(*I)) Pipe[I, I] {
	return MapPipe[I, I](func(item I) I {
		f(&item)
		return item
	})
}

// ClonedPipe is the identity pipe specialized for item types that are cheap,
// value-semantic copies of themselves (the Go analogue of Rust's Cloned
// adaptor, which exists to convert a stream of &T into a stream of T). In Go
// values are already copied on assignment, so ClonedPipe is IdentityPipe
// under a name that documents intent at call sites ported from the Rust
// source.
func ClonedPipe[I any]() Pipe[I, I] { return IdentityPipe[I]() }

// ComposePipe chains two pipes end to end: first.Apply feeds second.Apply.
func ComposePipe[I, M, O any](first Pipe[I, M], second Pipe[M, O]) Pipe[I, O] {
	return PipeFunc[I, O](func(ctx context.Context, in Seq[I]) Seq[O] {
		return second.Apply(ctx, first.Apply(ctx, in))
	})
}

// ChainPipe concatenates two pipes' outputs: everything from first, then
// everything from second, both fed the same input sequence. Used to turn a
// Pipe into part of a Sink composition without re-reading the source twice
// when the source is already materialized per-task.
func ChainPipe[I, O any](first, second Pipe[I, O]) Pipe[I, O] {
	return PipeFunc[I, O](func(ctx context.Context, in Seq[I]) Seq[O] {
		items := Collect(in)
		return func(yield func(O) bool) {
			stop := false
			first.Apply(ctx, Of(items))(func(o O) bool {
				if !yield(o) {
					stop = true
					return false
				}
				return true
			})
			if stop {
				return
			}
			second.Apply(ctx, Of(items))(func(o O) bool { return yield(o) })
		}
	})
}
