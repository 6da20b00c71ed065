package dist

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
	"github.com/constellation-rs/amadeus-go/pkg/reduce"
	"github.com/constellation-rs/amadeus-go/pkg/source"
	"github.com/constellation-rs/amadeus-go/pkg/workerpool/localpool"
)

// wireInt64 is a minimal ProcessSend implementation (through its pointer,
// *wireInt64, since UnmarshalBinary must write into the value): an int64
// that knows how to marshal/unmarshal itself, just enough to exercise
// dist.Run's wire round trip without pulling in a real wire format.
type wireInt64 int64

func newWire(n int64) *wireInt64 {
	w := wireInt64(n)
	return &w
}

func (w wireInt64) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(w))
	return buf, nil
}

func (w *wireInt64) UnmarshalBinary(data []byte) error {
	*w = wireInt64(binary.BigEndian.Uint64(data))
	return nil
}

func sumTree() reduce.Tree[int, *wireInt64, int64] {
	return reduce.Tree[int, *wireInt64, int64]{
		Stage: reduce.Folder(
			func() int64 { return 0 },
			func(s int64, item int) int64 { return s + int64(item) },
			newWire,
		),
		Merge:  reduce.CombinerOver(func(a, b *wireInt64) *wireInt64 { return newWire(int64(*a + *b)) }),
		Finish: func(s *wireInt64) int64 { return int64(*s) },
	}
}

func blankWire() *wireInt64 { return new(wireInt64) }

func TestRunSumsAcrossBatchesAndProcesses(t *testing.T) {
	stream := source.FromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 2)
	pool := localpool.New()
	got, err := Run[int, int, *wireInt64, int64](
		context.Background(), pool, stream, pipeline.IdentityPipe[int](),
		sumTree(), blankWire, 2, 0,
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 55 {
		t.Fatalf("got %d, want 55", got)
	}
}

func TestRunSingleBatchEqualsWholeSum(t *testing.T) {
	stream := source.FromSlice([]int{1, 2, 3, 4, 5}, 1)
	pool := localpool.New()
	got, err := Run[int, int, *wireInt64, int64](
		context.Background(), pool, stream, pipeline.IdentityPipe[int](),
		sumTree(), blankWire, 100, 0,
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 15 {
		t.Fatalf("got %d, want 15", got)
	}
}

// E2 — Sum: the same [1,2,3,4,5] -> 15 scenario par's TestE2Sum runs in a
// single process, carried here across batches and the wire round trip.
func TestE2SumAcrossBatches(t *testing.T) {
	stream := source.FromSlice([]int{1, 2, 3, 4, 5}, 2)
	pool := localpool.New()
	got, err := Run[int, int, *wireInt64, int64](
		context.Background(), pool, stream, pipeline.IdentityPipe[int](),
		sumTree(), blankWire, 2, 0,
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 15 {
		t.Fatalf("got %d, want 15", got)
	}
}

func countTree() reduce.Tree[int, *wireInt64, int64] {
	return reduce.Tree[int, *wireInt64, int64]{
		Stage: reduce.Folder(
			func() int64 { return 0 },
			func(n int64, _ int) int64 { return n + 1 },
			newWire,
		),
		Merge:  reduce.CombinerOver(func(a, b *wireInt64) *wireInt64 { return newWire(int64(*a + *b)) }),
		Finish: func(n *wireInt64) int64 { return int64(*n) },
	}
}

// E1 — Count: the same [0..10] -> 11 scenario par's TestE1Count runs in a
// single process, carried here across batches and the wire round trip.
func TestE1CountAcrossBatches(t *testing.T) {
	stream := source.FromSlice([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 3)
	pool := localpool.New()
	got, err := Run[int, int, *wireInt64, int64](
		context.Background(), pool, stream, pipeline.IdentityPipe[int](),
		countTree(), blankWire, 2, 0,
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != 11 {
		t.Fatalf("got %d, want 11", got)
	}
}
