package reduce

import "sort"

// Histogram reduces a stream of comparable keys to a sorted count of how
// many times each key occurred. Per-task counting uses a map (StepA) that
// is emitted as an unsorted slice; the merge stage (StepB) sorts both sides
// and coalesces matching keys by summing counts — the same
// sorted-merge-coalesce shape as the original's itertools::merge +
// coalesce. Finish sorts once more, so a result built from a single
// partial (which never passes through a merge) is ordered too.
func Histogram[B comparable](less func(a, b B) bool) Tree[B, []HistogramBucket[B], []HistogramBucket[B]] {
	return Tree[B, []HistogramBucket[B], []HistogramBucket[B]]{
		Stage: Folder(
			func() map[B]uint64 { return make(map[B]uint64) },
			func(counts map[B]uint64, item B) map[B]uint64 {
				counts[item]++
				return counts
			},
			func(counts map[B]uint64) []HistogramBucket[B] {
				buckets := make([]HistogramBucket[B], 0, len(counts))
				for k, n := range counts {
					buckets = append(buckets, HistogramBucket[B]{Key: k, Count: n})
				}
				return buckets
			},
		),
		Merge:  CombinerOver(func(a, b []HistogramBucket[B]) []HistogramBucket[B] { return mergeBuckets(a, b, less) }),
		Finish: func(b []HistogramBucket[B]) []HistogramBucket[B] {
			sort.Slice(b, func(i, j int) bool { return less(b[i].Key, b[j].Key) })
			return b
		},
	}
}

// HistogramBucket pairs a key with how many times it was seen.
type HistogramBucket[B comparable] struct {
	Key   B
	Count uint64
}

// mergeBuckets sorts both inputs by key, then walks them in lockstep,
// summing counts for equal keys (the "coalesce" step).
func mergeBuckets[B comparable](a, b []HistogramBucket[B], less func(x, y B) bool) []HistogramBucket[B] {
	sort.Slice(a, func(i, j int) bool { return less(a[i].Key, a[j].Key) })
	sort.Slice(b, func(i, j int) bool { return less(b[i].Key, b[j].Key) })

	out := make([]HistogramBucket[B], 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Key == b[j].Key:
			out = append(out, HistogramBucket[B]{Key: a[i].Key, Count: a[i].Count + b[j].Count})
			i++
			j++
		case less(a[i].Key, b[j].Key):
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
