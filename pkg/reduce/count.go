package reduce

// Count reduces a stream of any item type to the number of items seen.
func Count[I any]() Factory[Reducer[I, int64]] {
	return FolderIdentity[I, int64](
		func() int64 { return 0 },
		func(n int64, _ I) int64 { return n + 1 },
	)
}
