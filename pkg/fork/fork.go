// Package fork implements the fan-out sinks: broadcast a single stream of
// items to several independent sinks and join their Done values together.
// Branches never observe each other's short-circuit state — each runs to
// its own completion against the same items.
//
// The original algebra generates tuple arities 0 through 8 via a macro;
// Go has no macro facility; Fork2 through Fork4 are written out by hand for
// the common small arities, and ForkN covers everything above that with a
// slice instead of a fixed-width tuple, which is the idiomatic Go answer
// to "I need the Nth case of something a macro would otherwise generate."
package fork

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

// Pair is the Done type Fork2 produces.
type Pair[A, B any] struct {
	A A
	B B
}

// Triple is the Done type Fork3 produces.
type Triple[A, B, C any] struct {
	A A
	B B
	C C
}

// Quad is the Done type Fork4 produces.
type Quad[A, B, C, D any] struct {
	A A
	B B
	C C
	D D
}

// Fork2 broadcasts in to two sinks and joins their outputs into a Pair.
func Fork2[I, A, B any](a pipeline.Sink[I, A], b pipeline.Sink[I, B]) pipeline.Sink[I, Pair[A, B]] {
	return pipeline.SinkFunc[I, Pair[A, B]](func(ctx context.Context, in pipeline.Seq[I]) Pair[A, B] {
		items := pipeline.Collect(in)
		return Pair[A, B]{
			A: a.Forward(ctx, pipeline.Of(items)),
			B: b.Forward(ctx, pipeline.Of(items)),
		}
	})
}

// Fork3 broadcasts in to three sinks and joins their outputs into a Triple.
func Fork3[I, A, B, C any](a pipeline.Sink[I, A], b pipeline.Sink[I, B], c pipeline.Sink[I, C]) pipeline.Sink[I, Triple[A, B, C]] {
	return pipeline.SinkFunc[I, Triple[A, B, C]](func(ctx context.Context, in pipeline.Seq[I]) Triple[A, B, C] {
		items := pipeline.Collect(in)
		return Triple[A, B, C]{
			A: a.Forward(ctx, pipeline.Of(items)),
			B: b.Forward(ctx, pipeline.Of(items)),
			C: c.Forward(ctx, pipeline.Of(items)),
		}
	})
}

// Fork4 broadcasts in to four sinks and joins their outputs into a Quad.
func Fork4[I, A, B, C, D any](a pipeline.Sink[I, A], b pipeline.Sink[I, B], c pipeline.Sink[I, C], d pipeline.Sink[I, D]) pipeline.Sink[I, Quad[A, B, C, D]] {
	return pipeline.SinkFunc[I, Quad[A, B, C, D]](func(ctx context.Context, in pipeline.Seq[I]) Quad[A, B, C, D] {
		items := pipeline.Collect(in)
		return Quad[A, B, C, D]{
			A: a.Forward(ctx, pipeline.Of(items)),
			B: b.Forward(ctx, pipeline.Of(items)),
			C: c.Forward(ctx, pipeline.Of(items)),
			D: d.Forward(ctx, pipeline.Of(items)),
		}
	})
}

// ForkN broadcasts in to an arbitrary number of same-Done-type sinks
// (arities 5 through 8, and beyond, fold into this one case) and joins
// their outputs into a slice in branch order.
func ForkN[I, D any](sinks ...pipeline.Sink[I, D]) pipeline.Sink[I, []D] {
	return pipeline.SinkFunc[I, []D](func(ctx context.Context, in pipeline.Seq[I]) []D {
		items := pipeline.Collect(in)
		out := make([]D, len(sinks))
		for i, s := range sinks {
			out[i] = s.Forward(ctx, pipeline.Of(items))
		}
		return out
	})
}

// Fork0 broadcasts in to no branches at all, the degenerate base case the
// original's tuple-arity macro also generates; it simply drains the
// sequence.
func Fork0[I any]() pipeline.Sink[I, struct{}] {
	return pipeline.SinkFunc[I, struct{}](func(ctx context.Context, in pipeline.Seq[I]) struct{} {
		in(func(I) bool { return true })
		return struct{}{}
	})
}
