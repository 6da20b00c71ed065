package par

import (
	"context"
	"testing"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
	"github.com/constellation-rs/amadeus-go/pkg/reduce"
	"github.com/constellation-rs/amadeus-go/pkg/source"
	"github.com/constellation-rs/amadeus-go/pkg/workerpool/localpool"
)

func TestRunSumOverChunkedSlice(t *testing.T) {
	stream := source.FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8}, 3)
	tr := reduce.Tree[int, int, int]{
		Stage:  reduce.Sum[int](),
		Merge:  reduce.CombinerOver(func(a, b int) int { return a + b }),
		Finish: func(n int) int { return n },
	}
	got, err := Run[int, int, int, int](context.Background(), localpool.New(), stream, pipeline.IdentityPipe[int](), tr, 0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 36 {
		t.Fatalf("got %d, want 36", got)
	}
}

func TestRunSinkCollectsAllItems(t *testing.T) {
	stream := source.FromSlice([]int{1, 2, 3, 4, 5}, 2)
	got, err := RunSink[int, int, []int](
		context.Background(), localpool.New(), stream, pipeline.IdentityPipe[int](),
		func() Sink[int, []int] {
			return pipeline.SinkFunc[int, []int](func(ctx context.Context, in pipeline.Seq[int]) []int {
				return pipeline.Collect(in)
			})
		},
		func(a, b []int) []int { return append(append([]int{}, a...), b...) },
		0,
	)
	if err != nil {
		t.Fatalf("RunSink: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %v, want 5 items", got)
	}
}

func TestMapFilterStreamCombinators(t *testing.T) {
	stream := source.FromSlice([]int{1, 2, 3, 4, 5, 6}, 3)
	mapped := Map(stream, func(v int) int { return v * 10 })
	filtered := Filter(mapped, func(v int) bool { return v > 20 })
	out := pipeline.Tasks(context.Background(), filtered)
	var all []int
	for _, task := range out {
		all = append(all, pipeline.Collect(task.Items(context.Background()))...)
	}
	if len(all) != 4 {
		t.Fatalf("got %v, want 4 items > 20", all)
	}
}
