package reduce

// GroupBy reduces a stream of items to a map from key (extracted by
// keyFn) to the folded value of every item sharing that key, using an
// inner Tree so each group's own merge stays associative across tasks —
// group_by is "factor the stream by key, then run an independent
// aggregation per key," and this mirrors that by running the inner Tree's
// Stage/Merge per bucket.
func GroupBy[I any, K comparable, A, D any](keyFn func(I) K, inner Tree[I, A, D]) Tree[I, map[K]A, map[K]D] {
	return Tree[I, map[K]A, map[K]D]{
		Stage: FactoryFunc[Reducer[I, map[K]A]](func() Reducer[I, map[K]A] {
			return &groupByReducer[I, K, A]{keyFn: keyFn, stage: inner.Stage, groups: make(map[K]Reducer[I, A])}
		}),
		Merge: FactoryFunc[Reducer[map[K]A, map[K]A]](func() Reducer[map[K]A, map[K]A] {
			return &groupMergeReducer[K, A]{merge: inner.Merge}
		}),
		Finish: func(groups map[K]A) map[K]D {
			out := make(map[K]D, len(groups))
			for k, a := range groups {
				out[k] = inner.Finish(a)
			}
			return out
		},
	}
}
