package reduce

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

// allReducer short-circuits: once pred fails for one item, it stops pulling
// further items from its Seq entirely (the `while self.0 { ... }` loop in
// the original), so a failing predicate early in an infinite stream is
// still observable without having to drain the rest.
type allReducer[I any] struct {
	pred    func(I) bool
	holds   bool
	checked bool
}

func (r *allReducer[I]) Push(ctx context.Context, in pipeline.Seq[I]) {
	if !r.checked {
		r.holds, r.checked = true, true
	}
	if !r.holds {
		return
	}
	in(func(item I) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		if !r.pred(item) {
			r.holds = false
			return false
		}
		return true
	})
}

func (r *allReducer[I]) Output() bool { return r.holds }

// All reduces a stream to whether pred holds for every item, short-
// circuiting on the first failure.
func All[I any](pred func(I) bool) Factory[Reducer[I, bool]] {
	return FactoryFunc[Reducer[I, bool]](func() Reducer[I, bool] {
		return &allReducer[I]{pred: pred}
	})
}

// anyReducer mirrors allReducer: internally it tracks "not yet found",
// negating pred on push and negating again on Output, exactly as the
// original's poll_forward does — so the same short-circuit-on-match
// behavior falls out of the same loop shape as All.
type anyReducer[I any] struct {
	pred    func(I) bool
	notYet  bool
	checked bool
}

func (r *anyReducer[I]) Push(ctx context.Context, in pipeline.Seq[I]) {
	if !r.checked {
		r.notYet, r.checked = true, true
	}
	if !r.notYet {
		return
	}
	in(func(item I) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		r.notYet = r.notYet && !r.pred(item)
		return r.notYet
	})
}

func (r *anyReducer[I]) Output() bool { return !r.notYet }

// Any reduces a stream to whether pred holds for at least one item,
// short-circuiting on the first match.
func Any[I any](pred func(I) bool) Factory[Reducer[I, bool]] {
	return FactoryFunc[Reducer[I, bool]](func() Reducer[I, bool] {
		return &anyReducer[I]{pred: pred}
	})
}

// BoolAnd and BoolOr merge the per-task All/Any booleans across tasks: a
// plain AND/OR, short-circuiting the same way a Combiner naturally does
// when the state is already false (true).
func BoolAnd() Factory[Reducer[bool, bool]] {
	return CombinerOver(func(a, b bool) bool { return a && b })
}

func BoolOr() Factory[Reducer[bool, bool]] {
	return CombinerOver(func(a, b bool) bool { return a || b })
}
