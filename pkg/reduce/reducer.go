// Package reduce implements the reducer algebra: the associative merge
// trees that fold a stream's per-task partial results down to one value,
// either locally (par, two stages) or across a process boundary (dist,
// three stages).
package reduce

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

// Factory makes fresh Reducer instances, one per task (and, for dist's
// third stage, one per process). Factories are what actually gets handed
// across the par/dist boundary; a Reducer itself is mutable, task-local
// state and never crosses a goroutine boundary once created.
type Factory[R any] interface {
	Make() R
}

// FactoryFunc adapts a plain function to Factory.
type FactoryFunc[R any] func() R

func (f FactoryFunc[R]) Make() R { return f() }

// Reducer consumes an entire Seq of Input items and folds them to a single
// Done value. Push may be called more than once against the same Reducer
// (the dist third stage pushes one partial Done per worker process through
// a reducer whose Input type equals the previous stage's Done type);
// Output must be idempotent.
type Reducer[I, D any] interface {
	Push(ctx context.Context, in pipeline.Seq[I])
	Output() D
}
