package reduce

import (
	"hash/maphash"
	"sort"

	"github.com/bits-and-blooms/bloom/v3"
)

// The real streaming-algorithms crate backing SampleUnstable/MostFrequent/
// MostDistinct (HyperLogLog, Count-Min, true reservoir sampling) is out of
// scope here: those are probabilistic sketches with their own correctness
// envelope, not part of the reducer algebra itself. The three reducers
// below are deterministic, mergeable reference implementations rather than
// true sketches — each built from the same Tree shape every other
// aggregation uses.
var seedGen maphash.Seed

func init() { seedGen = maphash.MakeSeed() }

// sampleState keeps the k items with the smallest hash of their encoded
// form seen so far — deterministic min-hash sampling. Unlike a random
// reservoir, the same input yields the same sample within one process
// (the hash seed is chosen once, at package init, so a new process may
// pick a different sample), and two
// sketches merge by taking the k smallest hashes of the union, which is
// exact and associative, at the cost of not being uniformly random over
// arrival order.
type sampleState[I any] struct {
	k     int
	items []sampleEntry[I]
}

type sampleEntry[I any] struct {
	hash uint64
	item I
}

func hashOf(key string) uint64 {
	var h maphash.Hash
	h.SetSeed(seedGen)
	h.WriteString(key)
	return h.Sum64()
}

func sampleInsert[I any](s sampleState[I], h uint64, item I) sampleState[I] {
	s.items = append(s.items, sampleEntry[I]{hash: h, item: item})
	sort.Slice(s.items, func(i, j int) bool { return s.items[i].hash < s.items[j].hash })
	if len(s.items) > s.k {
		s.items = s.items[:s.k]
	}
	return s
}

func sampleMerge[I any](a, b sampleState[I]) sampleState[I] {
	k := a.k
	if k == 0 {
		k = b.k
	}
	merged := append(append([]sampleEntry[I]{}, a.items...), b.items...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].hash < merged[j].hash })
	if len(merged) > k {
		merged = merged[:k]
	}
	return sampleState[I]{k: k, items: merged}
}

// SampleUnstable reduces a stream to an unordered sample of at most k
// items, keyed by keyFn to produce a stable hash per item.
func SampleUnstable[I any](k int, keyFn func(I) string) Tree[I, sampleState[I], []I] {
	zero := func() sampleState[I] { return sampleState[I]{k: k} }
	return Tree[I, sampleState[I], []I]{
		Stage: FolderIdentity(zero, func(s sampleState[I], item I) sampleState[I] {
			return sampleInsert(s, hashOf(keyFn(item)), item)
		}),
		Merge: CombinerOver(sampleMerge[I]),
		Finish: func(s sampleState[I]) []I {
			out := make([]I, len(s.items))
			for i, e := range s.items {
				out[i] = e.item
			}
			return out
		},
	}
}

// MostFrequent reduces a stream to the k most common keys (ties broken by
// key ordering), an exact computation built directly on Histogram rather
// than an approximate Count-Min sketch.
func MostFrequent[B comparable](k int, less func(a, b B) bool) Tree[B, []HistogramBucket[B], []HistogramBucket[B]] {
	hist := Histogram(less)
	return Tree[B, []HistogramBucket[B], []HistogramBucket[B]]{
		Stage: hist.Stage,
		Merge: hist.Merge,
		Finish: func(buckets []HistogramBucket[B]) []HistogramBucket[B] {
			sort.Slice(buckets, func(i, j int) bool {
				if buckets[i].Count != buckets[j].Count {
					return buckets[i].Count > buckets[j].Count
				}
				return less(buckets[i].Key, buckets[j].Key)
			})
			if len(buckets) > k {
				buckets = buckets[:k]
			}
			return buckets
		},
	}
}

// distinctState is a bloom filter accumulating every key seen across every
// task that has merged into it. Merging two tasks' filters (a bitwise OR)
// is exact set union regardless of overlap, so the only approximation is
// the filter's own cardinality estimate at Finish time — unlike a plain
// counter, nothing here double-counts a key seen by more than one task.
type distinctState struct {
	filter *bloom.BloomFilter
}

func distinctZero() distinctState {
	return distinctState{filter: bloom.NewWithEstimates(1_000_000, 0.01)}
}

func distinctPush(s distinctState, key string) distinctState {
	s.filter.AddString(key)
	return s
}

func distinctMerge(a, b distinctState) distinctState {
	// Merge returns an error (ignored here) if the two filters differ in
	// size/hash-count; every task's filter is built with the same
	// NewWithEstimates parameters, so the sizes always match here.
	a.filter.Merge(b.filter)
	return a
}

// MostDistinct reduces a stream to an approximate count of distinct keys
// (by keyFn), backed by a real bloom filter's cardinality estimate rather
// than a hand-rolled membership structure.
func MostDistinct[I any](keyFn func(I) string) Tree[I, distinctState, uint64] {
	return Tree[I, distinctState, uint64]{
		Stage: FolderIdentity(distinctZero, func(s distinctState, item I) distinctState {
			return distinctPush(s, keyFn(item))
		}),
		Merge:  CombinerOver(distinctMerge),
		Finish: func(s distinctState) uint64 { return uint64(s.filter.ApproximatedSize()) },
	}
}
