package source

import (
	"context"
	"testing"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

func drain[T any](ctx context.Context, s pipeline.Stream[T]) []T {
	var out []T
	for {
		task, ok := s.NextTask(ctx)
		if !ok {
			return out
		}
		out = append(out, pipeline.Collect(task.Items(ctx))...)
	}
}

func TestFromSliceChunksWithoutDroppingOrDuplicatingItems(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}
	s := FromSlice(items, 3)
	ctx := context.Background()
	var taskCount int
	var got []int
	for {
		task, ok := s.NextTask(ctx)
		if !ok {
			break
		}
		taskCount++
		got = append(got, pipeline.Collect(task.Items(ctx))...)
	}
	if taskCount != 3 {
		t.Fatalf("got %d tasks, want 3 (ceil(7/3))", taskCount)
	}
	if len(got) != len(items) {
		t.Fatalf("got %d items, want %d", len(got), len(items))
	}
	for i := range items {
		if got[i] != items[i] {
			t.Fatalf("got %v, want %v", got, items)
		}
	}
}

func TestFromSliceSingleChunkWhenSizeIsZero(t *testing.T) {
	s := FromSlice([]int{1, 2, 3}, 0)
	ctx := context.Background()
	_, ok := s.NextTask(ctx)
	if !ok {
		t.Fatalf("expected one task")
	}
	_, ok = s.NextTask(ctx)
	if ok {
		t.Fatalf("expected exactly one task when chunkSize<=0")
	}
}

func TestFromSeqIsSingleTask(t *testing.T) {
	s := FromSeq(pipeline.Of([]int{1, 2, 3}))
	ctx := context.Background()
	_, ok := s.NextTask(ctx)
	if !ok {
		t.Fatalf("expected one task")
	}
	_, ok = s.NextTask(ctx)
	if ok {
		t.Fatalf("expected FromSeq to yield exactly one task")
	}
}

func TestDispatchEither2TagsBothArms(t *testing.T) {
	a := FromSlice([]int{1, 2}, 0)
	b := FromSlice([]string{"x", "y"}, 0)
	out := drain(context.Background(), DispatchEither2[int, string](a, b))
	var as, bs int
	for _, e := range out {
		if e.IsA {
			as++
		} else {
			bs++
		}
	}
	if as != 2 || bs != 2 {
		t.Fatalf("got as=%d bs=%d, want 2 and 2", as, bs)
	}
}

func TestJoin2StopsAtShorterSide(t *testing.T) {
	a := FromSlice([]int{1, 2, 3, 4}, 0)
	b := FromSlice([]string{"x", "y"}, 0)
	out := drain(context.Background(), Join2[int, string](a, b))
	if len(out) != 2 {
		t.Fatalf("got %d pairs, want 2 (bounded by shorter side)", len(out))
	}
	if out[0].A != 1 || out[0].B != "x" || out[1].A != 2 || out[1].B != "y" {
		t.Fatalf("got %v, want pairwise zip", out)
	}
}
