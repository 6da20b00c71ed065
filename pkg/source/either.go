package source

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

// Either2 tags an item as coming from one of two heterogeneous arms, the
// supplemented sum-type dispatch stream: it lets streams of two distinct
// source kinds be chained and processed through a single downstream pipe
// by first converging both arms to a common item type.
type Either2[A, B any] struct {
	IsA bool
	A   A
	B   B
}

// DispatchEither2 converges two streams of different item types into one
// Stream[Either2[A, B]], running a's tasks to completion before b's —
// matching chainStream's ordering contract in pipeline.
func DispatchEither2[A, B any](a pipeline.Stream[A], b pipeline.Stream[B]) pipeline.Stream[Either2[A, B]] {
	return pipeline.ChainStream(
		pipeline.MapStream(a, func(v A) Either2[A, B] { return Either2[A, B]{IsA: true, A: v} }),
		pipeline.MapStream(b, func(v B) Either2[A, B] { return Either2[A, B]{IsA: false, B: v} }),
	)
}

// Either3 extends Either2 to three arms, covering the three-kind in-memory
// partition chaining scenario SPEC_FULL calls out.
type Either3[A, B, C any] struct {
	Tag int // 0=A, 1=B, 2=C
	A   A
	B   B
	C   C
}

// DispatchEither3 converges three streams into one Stream[Either3[A,B,C]].
func DispatchEither3[A, B, C any](a pipeline.Stream[A], b pipeline.Stream[B], c pipeline.Stream[C]) pipeline.Stream[Either3[A, B, C]] {
	ab := pipeline.ChainStream(
		pipeline.MapStream(a, func(v A) Either3[A, B, C] { return Either3[A, B, C]{Tag: 0, A: v} }),
		pipeline.MapStream(b, func(v B) Either3[A, B, C] { return Either3[A, B, C]{Tag: 1, B: v} }),
	)
	return pipeline.ChainStream(
		ab,
		pipeline.MapStream(c, func(v C) Either3[A, B, C] { return Either3[A, B, C]{Tag: 2, C: v} }),
	)
}

// Join2Item is one paired item from Join2.
type Join2Item[A, B any] struct {
	A A
	B B
}

// Join2 zips two streams' tasks pairwise into a stream of tuples, stopping
// as soon as either side runs out of tasks. Each resulting task zips its
// two source tasks' items pairwise the same way.
func Join2[A, B any](a pipeline.Stream[A], b pipeline.Stream[B]) pipeline.Stream[Join2Item[A, B]] {
	return &join2Stream[A, B]{a: a, b: b}
}

type join2Stream[A, B any] struct {
	a pipeline.Stream[A]
	b pipeline.Stream[B]
}

func (s *join2Stream[A, B]) SizeHint() pipeline.SizeHint {
	ha, hb := s.a.SizeHint(), s.b.SizeHint()
	hint := pipeline.SizeHint{Lower: min(ha.Lower, hb.Lower)}
	if ha.HasUpper && hb.HasUpper {
		hint.Upper = min(ha.Upper, hb.Upper)
		hint.HasUpper = true
	}
	return hint
}

func (s *join2Stream[A, B]) NextTask(ctx context.Context) (pipeline.Task[Join2Item[A, B]], bool) {
	ta, ok := s.a.NextTask(ctx)
	if !ok {
		return nil, false
	}
	tb, ok := s.b.NextTask(ctx)
	if !ok {
		return nil, false
	}
	return pipeline.TaskFunc[Join2Item[A, B]](func(ctx context.Context) pipeline.Seq[Join2Item[A, B]] {
		as := pipeline.Collect(ta.Items(ctx))
		bs := pipeline.Collect(tb.Items(ctx))
		n := len(as)
		if len(bs) < n {
			n = len(bs)
		}
		pairs := make([]Join2Item[A, B], n)
		for i := 0; i < n; i++ {
			pairs[i] = Join2Item[A, B]{A: as[i], B: bs[i]}
		}
		return pipeline.Of(pairs)
	}), true
}
