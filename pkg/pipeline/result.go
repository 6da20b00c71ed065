package pipeline

import (
	"context"
	"fmt"
)

// WrappedError carries an upstream failure as a value instead of aborting
// the task it occurred in, mirroring the original's IoError-style item
// errors (ResultExpand in util.rs): a source that hits a recoverable
// per-item fault (a bad record, a failed decode) can still report it
// downstream as data rather than stopping the whole task.
type WrappedError struct {
	Op  string
	Err error
}

func (w *WrappedError) Error() string { return fmt.Sprintf("%s: %v", w.Op, w.Err) }
func (w *WrappedError) Unwrap() error { return w.Err }

// Wrap builds a WrappedError for op.
func Wrap(op string, err error) *WrappedError { return &WrappedError{Op: op, Err: err} }

// Result is an item that may be a value or a per-item error, letting a
// fallible source or pipe stage hand failures to a downstream sink as
// ordinary stream data instead of aborting.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] { return Result[T]{Value: v} }

// Errf wraps a per-item failure.
func Errf[T any](op string, err error) Result[T] { return Result[T]{Err: Wrap(op, err)} }

// ExpandResults splits a Stream of Result[T] into its successful values,
// discarding errors via onErr (nil is a valid no-op). This is the Go
// rendering of ResultExpand: it lets a pipeline built entirely around
// plain T values consume a fallible upstream without every combinator in
// between needing to know about errors.
func ExpandResults[T any](s Stream[Result[T]], onErr func(error)) Stream[T] {
	return &expandStream[T]{upstream: s, onErr: onErr}
}

type expandStream[T any] struct {
	upstream Stream[Result[T]]
	onErr    func(error)
}

func (s *expandStream[T]) SizeHint() SizeHint {
	h := s.upstream.SizeHint()
	return SizeHint{Lower: 0, Upper: h.Upper, HasUpper: h.HasUpper}
}

func (s *expandStream[T]) NextTask(ctx context.Context) (Task[T], bool) {
	t, ok := s.upstream.NextTask(ctx)
	if !ok {
		return nil, false
	}
	onErr := s.onErr
	return TaskFunc[T](func(ctx context.Context) Seq[T] {
		return func(yield func(T) bool) {
			t.Items(ctx)(func(r Result[T]) bool {
				if r.Err != nil {
					if onErr != nil {
						onErr(r.Err)
					}
					return true
				}
				return yield(r.Value)
			})
		}
	}), true
}
