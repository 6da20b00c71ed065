package reduce

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

type groupByReducer[I any, K comparable, A any] struct {
	keyFn  func(I) K
	stage  Factory[Reducer[I, A]]
	groups map[K]Reducer[I, A]
}

func (r *groupByReducer[I, K, A]) Push(ctx context.Context, in pipeline.Seq[I]) {
	in(func(item I) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		k := r.keyFn(item)
		sub, ok := r.groups[k]
		if !ok {
			sub = r.stage.Make()
			r.groups[k] = sub
		}
		sub.Push(ctx, pipeline.Of([]I{item}))
		return true
	})
}

func (r *groupByReducer[I, K, A]) Output() map[K]A {
	out := make(map[K]A, len(r.groups))
	for k, sub := range r.groups {
		out[k] = sub.Output()
	}
	return out
}

// groupMergeReducer merges two groups-so-far maps (ReduceB/ReduceC for
// GroupBy): a key present in only one side passes through untouched, a key
// in both is merged by the inner Tree's own Merge reducer.
type groupMergeReducer[K comparable, A any] struct {
	merge   Factory[Reducer[A, A]]
	state   map[K]A
	seeded  bool
}

func (r *groupMergeReducer[K, A]) Push(ctx context.Context, in pipeline.Seq[map[K]A]) {
	if !r.seeded {
		r.state = make(map[K]A)
		r.seeded = true
	}
	in(func(groups map[K]A) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		for k, a := range groups {
			existing, ok := r.state[k]
			if !ok {
				r.state[k] = a
				continue
			}
			m := r.merge.Make()
			m.Push(ctx, pipeline.Of([]A{existing, a}))
			r.state[k] = m.Output()
		}
		return true
	})
}

func (r *groupMergeReducer[K, A]) Output() map[K]A {
	if !r.seeded {
		return make(map[K]A)
	}
	return r.state
}
