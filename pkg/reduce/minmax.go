package reduce

// Ordered is the set of item types the built-in Max/Min reducers compare
// directly with <, >.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string
}

// Max reduces to the largest item seen. On a tie, the later value wins —
// the same stability rule the original combine::Max uses, so that folding
// is well-defined regardless of how tasks are merged.
func Max[I Ordered]() Factory[Reducer[I, I]] {
	return CombinerOver(func(a, b I) I {
		if a > b {
			return a
		}
		return b
	})
}

// Min reduces to the smallest item seen. On a tie, the earlier value wins.
func Min[I Ordered]() Factory[Reducer[I, I]] {
	return CombinerOver(func(a, b I) I {
		if b < a {
			return b
		}
		return a
	})
}

// MaxBy reduces to the item for which cmp ranks highest, using a caller
// supplied three-way comparator (negative: a<b, zero: equal, positive:
// a>b). Ties keep the later value, matching Max's stability rule.
func MaxBy[I any](cmp func(a, b I) int) Factory[Reducer[I, I]] {
	return CombinerOver(func(a, b I) I {
		if cmp(a, b) > 0 {
			return a
		}
		return b
	})
}

// MinBy reduces to the item for which cmp ranks lowest. Ties keep the
// earlier value.
func MinBy[I any](cmp func(a, b I) int) Factory[Reducer[I, I]] {
	return CombinerOver(func(a, b I) I {
		if cmp(b, a) < 0 {
			return b
		}
		return a
	})
}

// MaxByKey reduces to the item whose extracted key is largest (ties favor
// the later item), the keyed counterpart of MaxBy.
func MaxByKey[I any, K Ordered](key func(I) K) Factory[Reducer[I, I]] {
	return CombinerOver(func(a, b I) I {
		if key(a) > key(b) {
			return a
		}
		return b
	})
}

// MinByKey reduces to the item whose extracted key is smallest (ties favor
// the earlier item).
func MinByKey[I any, K Ordered](key func(I) K) Factory[Reducer[I, I]] {
	return CombinerOver(func(a, b I) I {
		if key(b) < key(a) {
			return b
		}
		return a
	})
}
