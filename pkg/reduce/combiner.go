package reduce

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

// combinerReducer implements a CombinerSync-style reducer: state is an
// optional Done value, seeded by the first item (via lift) and merged with
// every subsequent item (also lifted) through an associative combine
// function. This is the authoring style max/min and their By/ByKey variants
// are built from, where Item and Done are usually the same type.
type combinerReducer[I, D any] struct {
	lift    func(I) D
	combine func(a, b D) D

	state D
	has   bool
}

// Combiner builds a Reducer factory from a lift/combine pair: lift turns an
// Input item into a Done value (identity when I == D), combine merges two
// Done values associatively.
func Combiner[I, D any](lift func(I) D, combine func(a, b D) D) Factory[Reducer[I, D]] {
	return FactoryFunc[Reducer[I, D]](func() Reducer[I, D] {
		return &combinerReducer[I, D]{lift: lift, combine: combine}
	})
}

// CombinerOver is Combiner specialized to the common case where the item
// type already is the Done type (sum, max, min of a plain comparable).
func CombinerOver[D any](combine func(a, b D) D) Factory[Reducer[D, D]] {
	return Combiner(func(d D) D { return d }, combine)
}

func (r *combinerReducer[I, D]) Push(ctx context.Context, in pipeline.Seq[I]) {
	in(func(item I) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		d := r.lift(item)
		if !r.has {
			r.state, r.has = d, true
			return true
		}
		r.state = r.combine(r.state, d)
		return true
	})
}

func (r *combinerReducer[I, D]) Output() D { return r.state }
