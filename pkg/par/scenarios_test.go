package par

import (
	"context"
	"testing"

	"github.com/constellation-rs/amadeus-go/pkg/fork"
	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
	"github.com/constellation-rs/amadeus-go/pkg/reduce"
	"github.com/constellation-rs/amadeus-go/pkg/source"
	"github.com/constellation-rs/amadeus-go/pkg/workerpool/localpool"
)

// These mirror the concrete scenarios the original algebra's E1-E8 name,
// rendered against this port's count/sum/filter/max_by_key/histogram/
// fork/group_by/all primitives.

func TestE1Count(t *testing.T) {
	stream := source.FromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0)
	tr := reduce.Tree[int, int64, int64]{
		Stage:  reduce.Count[int](),
		Merge:  reduce.CombinerOver(func(a, b int64) int64 { return a + b }),
		Finish: func(n int64) int64 { return n },
	}
	got, err := Run[int, int, int64, int64](context.Background(), localpool.New(), stream, pipeline.IdentityPipe[int](), tr, 0)
	if err != nil || got != 11 {
		t.Fatalf("got %d, err=%v, want 11", got, err)
	}
}

func TestE2Sum(t *testing.T) {
	stream := source.FromSlice([]uint32{1, 2, 3, 4, 5}, 0)
	tr := reduce.Tree[uint32, uint64, uint64]{
		Stage: reduce.Folder(
			func() uint64 { return 0 },
			func(s uint64, v uint32) uint64 { return s + uint64(v) },
			func(s uint64) uint64 { return s },
		),
		Merge:  reduce.CombinerOver(func(a, b uint64) uint64 { return a + b }),
		Finish: func(s uint64) uint64 { return s },
	}
	got, err := Run[uint32, uint32, uint64, uint64](context.Background(), localpool.New(), stream, pipeline.IdentityPipe[uint32](), tr, 0)
	if err != nil || got != 15 {
		t.Fatalf("got %d, err=%v, want 15", got, err)
	}
}

func TestE3FilterThenCount(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	stream := Filter(source.FromSlice(items, 10), func(v int) bool { return v%3 == 0 })
	tr := reduce.Tree[int, int64, int64]{
		Stage:  reduce.Count[int](),
		Merge:  reduce.CombinerOver(func(a, b int64) int64 { return a + b }),
		Finish: func(n int64) int64 { return n },
	}
	got, err := Run[int, int, int64, int64](context.Background(), localpool.New(), stream, pipeline.IdentityPipe[int](), tr, 0)
	if err != nil || got != 34 {
		t.Fatalf("got %d, err=%v, want 34", got, err)
	}
}

func TestE4MaxByKey(t *testing.T) {
	stream := source.FromSlice([]string{"a", "bb", "ccc", "d"}, 0)
	tr := reduce.Tree[string, string, string]{
		Stage:  reduce.MaxByKey[string, int](func(s string) int { return len(s) }),
		Merge:  reduce.CombinerOver(func(a, b string) string { return pickMaxByLen(a, b) }),
		Finish: func(s string) string { return s },
	}
	got, err := Run[string, string, string, string](context.Background(), localpool.New(), stream, pipeline.IdentityPipe[string](), tr, 0)
	if err != nil || got != "ccc" {
		t.Fatalf("got %q, err=%v, want %q", got, err, "ccc")
	}
}

func pickMaxByLen(a, b string) string {
	if len(a) >= len(b) {
		return a
	}
	return b
}

func TestE5Histogram(t *testing.T) {
	stream := source.FromSlice([]int{1, 2, 2, 3, 3, 3}, 0)
	tr := reduce.Histogram[int](func(a, b int) bool { return a < b })
	got, err := Run[int, int, []reduce.HistogramBucket[int], []reduce.HistogramBucket[int]](
		context.Background(), localpool.New(), stream, pipeline.IdentityPipe[int](), tr, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := map[int]uint64{1: 1, 2: 2, 3: 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want buckets for %v", got, want)
	}
	for _, b := range got {
		if want[b.Key] != b.Count {
			t.Fatalf("bucket %v: got count %d, want %d", b.Key, b.Count, want[b.Key])
		}
	}
}

func TestE6Fork(t *testing.T) {
	stream := source.FromSlice([]int{1, 2, 3, 4}, 0)
	countSink := pipeline.SinkFunc[int, int64](func(ctx context.Context, in pipeline.Seq[int]) int64 {
		r := reduce.Count[int]().Make()
		r.Push(ctx, in)
		return r.Output()
	})
	sumSink := pipeline.SinkFunc[int, int](func(ctx context.Context, in pipeline.Seq[int]) int {
		r := reduce.Sum[int]().Make()
		r.Push(ctx, in)
		return r.Output()
	})
	forked := fork.Fork2[int, int64, int](countSink, sumSink)
	got, err := RunSink[int, int, fork.Pair[int64, int]](
		context.Background(), localpool.New(), stream, pipeline.IdentityPipe[int](),
		func() Sink[int, fork.Pair[int64, int]] { return forked },
		func(a, b fork.Pair[int64, int]) fork.Pair[int64, int] {
			return fork.Pair[int64, int]{A: a.A + b.A, B: a.B + b.B}
		},
		0,
	)
	if err != nil {
		t.Fatalf("RunSink: %v", err)
	}
	if got.A != 4 || got.B != 10 {
		t.Fatalf("got %+v, want count=4 sum=10", got)
	}
}

func TestE7GroupByCount(t *testing.T) {
	type pair struct {
		k string
		v int
	}
	items := []pair{{"a", 1}, {"b", 1}, {"a", 1}, {"a", 1}, {"b", 1}, {"c", 1}}
	stream := source.FromSlice(items, 0)
	inner := reduce.Tree[pair, int64, int64]{
		Stage:  reduce.Count[pair](),
		Merge:  reduce.CombinerOver(func(a, b int64) int64 { return a + b }),
		Finish: func(n int64) int64 { return n },
	}
	tr := reduce.GroupBy[pair, string, int64, int64](func(p pair) string { return p.k }, inner)
	got, err := Run[pair, pair, map[string]int64, map[string]int64](
		context.Background(), localpool.New(), stream, pipeline.IdentityPipe[pair](), tr, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got["a"] != 3 || got["b"] != 2 || got["c"] != 1 {
		t.Fatalf("got %v, want a=3 b=2 c=1", got)
	}
}

func TestE8AllShortCircuitsOverInfiniteStream(t *testing.T) {
	var drawn int
	infinite := func(yield func(int) bool) {
		for i := 0; ; i++ {
			drawn++
			if !yield(i) {
				return
			}
		}
	}
	stream := source.FromSeq[int](infinite)
	factory := reduce.All(func(v int) bool { return v < 1000 })
	got, err := Run[int, int, bool, bool](
		context.Background(), localpool.New(), stream, pipeline.IdentityPipe[int](),
		reduce.Tree[int, bool, bool]{
			Stage:  factory,
			Merge:  reduce.BoolAnd(),
			Finish: func(b bool) bool { return b },
		},
		0,
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got {
		t.Fatalf("expected All to be false once an item >= 1000 is drawn")
	}
	if drawn >= 2000 {
		t.Fatalf("drew %d items before short-circuiting, want well under 2000", drawn)
	}
}
