package reduce

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

type forEachReducer[I any] struct {
	f func(I)
}

func (r *forEachReducer[I]) Push(ctx context.Context, in pipeline.Seq[I]) {
	in(func(item I) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		r.f(item)
		return true
	})
}

func (r *forEachReducer[I]) Output() struct{} { return struct{}{} }

// ForEach reduces a stream purely for side effects; Done is always
// struct{}, the Go rendering of the original's Done = ().
func ForEach[I any](f func(I)) Factory[Reducer[I, struct{}]] {
	return FactoryFunc[Reducer[I, struct{}]](func() Reducer[I, struct{}] {
		return &forEachReducer[I]{f: f}
	})
}
