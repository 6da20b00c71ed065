package fork

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

// TupleSink2 reduces a stream of Pair items by projecting each slot out
// and feeding it to its own sink, the dual of Fork2: instead of one stream
// broadcast to many sinks, one stream of heterogeneous tuples is routed
// slot-by-slot to its matching sink. The result pairs each slot sink's own
// Done value.
func TupleSink2[I, A, B, DA, DB any](projA func(I) A, sinkA pipeline.Sink[A, DA], projB func(I) B, sinkB pipeline.Sink[B, DB]) pipeline.Sink[I, Pair[DA, DB]] {
	return pipeline.SinkFunc[I, Pair[DA, DB]](func(ctx context.Context, in pipeline.Seq[I]) Pair[DA, DB] {
		items := pipeline.Collect(in)
		as := make([]A, len(items))
		bs := make([]B, len(items))
		for i, item := range items {
			as[i] = projA(item)
			bs[i] = projB(item)
		}
		return Pair[DA, DB]{
			A: sinkA.Forward(ctx, pipeline.Of(as)),
			B: sinkB.Forward(ctx, pipeline.Of(bs)),
		}
	})
}

// TupleSink3 is TupleSink2 extended to three slots.
func TupleSink3[I, A, B, C, DA, DB, DC any](
	projA func(I) A, sinkA pipeline.Sink[A, DA],
	projB func(I) B, sinkB pipeline.Sink[B, DB],
	projC func(I) C, sinkC pipeline.Sink[C, DC],
) pipeline.Sink[I, Triple[DA, DB, DC]] {
	return pipeline.SinkFunc[I, Triple[DA, DB, DC]](func(ctx context.Context, in pipeline.Seq[I]) Triple[DA, DB, DC] {
		items := pipeline.Collect(in)
		as := make([]A, len(items))
		bs := make([]B, len(items))
		cs := make([]C, len(items))
		for i, item := range items {
			as[i] = projA(item)
			bs[i] = projB(item)
			cs[i] = projC(item)
		}
		return Triple[DA, DB, DC]{
			A: sinkA.Forward(ctx, pipeline.Of(as)),
			B: sinkB.Forward(ctx, pipeline.Of(bs)),
			C: sinkC.Forward(ctx, pipeline.Of(cs)),
		}
	})
}

// TupleSink4 is TupleSink2 extended to four slots, for parity with Fork4.
// It is the widest tuple sink; unlike Fork, there is no slice-based
// variant for more slots.
func TupleSink4[I, A, B, C, D, DA, DB, DC, DD any](
	projA func(I) A, sinkA pipeline.Sink[A, DA],
	projB func(I) B, sinkB pipeline.Sink[B, DB],
	projC func(I) C, sinkC pipeline.Sink[C, DC],
	projD func(I) D, sinkD pipeline.Sink[D, DD],
) pipeline.Sink[I, Quad[DA, DB, DC, DD]] {
	return pipeline.SinkFunc[I, Quad[DA, DB, DC, DD]](func(ctx context.Context, in pipeline.Seq[I]) Quad[DA, DB, DC, DD] {
		items := pipeline.Collect(in)
		as := make([]A, len(items))
		bs := make([]B, len(items))
		cs := make([]C, len(items))
		ds := make([]D, len(items))
		for i, item := range items {
			as[i] = projA(item)
			bs[i] = projB(item)
			cs[i] = projC(item)
			ds[i] = projD(item)
		}
		return Quad[DA, DB, DC, DD]{
			A: sinkA.Forward(ctx, pipeline.Of(as)),
			B: sinkB.Forward(ctx, pipeline.Of(bs)),
			C: sinkC.Forward(ctx, pipeline.Of(cs)),
			D: sinkD.Forward(ctx, pipeline.Of(ds)),
		}
	})
}
