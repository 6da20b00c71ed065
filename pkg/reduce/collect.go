package reduce

// Collect reduces a stream to a plain slice of every item seen, in
// whatever order tasks happen to finish and merge in. Mainly useful for
// tests and small result sets; prefer a real aggregation for large
// streams.
func Collect[I any]() Factory[Reducer[I, []I]] {
	return Folder(
		func() []I { return nil },
		func(acc []I, item I) []I { return append(acc, item) },
		func(acc []I) []I { return acc },
	)
}

// CollectTree is Collect wrapped as a full reduction tree, for callers that
// want a single Tree value rather than wiring Stage/Merge by hand.
func CollectTree[I any]() Tree[I, []I, []I] {
	return Tree[I, []I, []I]{
		Stage:  Collect[I](),
		Merge:  CombinerOver(func(a, b []I) []I { return append(append([]I{}, a...), b...) }),
		Finish: func(acc []I) []I { return acc },
	}
}
