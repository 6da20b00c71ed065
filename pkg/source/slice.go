// Package source provides the minimal in-memory sources the pipeline
// algebra needs to be exercised end to end: slice- and Seq-backed streams,
// a two/three-armed dispatch stream, and a pairwise join. These are the
// core's own demo/test surface, not a production connector.
package source

import (
	"context"
	"sync"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

// FromSlice splits items into one Task per chunk of chunkSize (chunkSize
// <= 0 means one task for the whole slice), so a single in-memory slice
// can still exercise multi-task parallelism.
func FromSlice[T any](items []T, chunkSize int) pipeline.Stream[T] {
	if chunkSize <= 0 {
		chunkSize = len(items)
		if chunkSize == 0 {
			chunkSize = 1
		}
	}
	return &sliceStream[T]{items: items, chunkSize: chunkSize}
}

type sliceStream[T any] struct {
	mu        sync.Mutex
	items     []T
	chunkSize int
	offset    int
}

func (s *sliceStream[T]) SizeHint() pipeline.SizeHint {
	n := len(s.items) - s.offset
	if n < 0 {
		n = 0
	}
	return pipeline.SizeHint{Lower: n, Upper: n, HasUpper: true}
}

func (s *sliceStream[T]) NextTask(ctx context.Context) (pipeline.Task[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offset >= len(s.items) {
		return nil, false
	}
	end := s.offset + s.chunkSize
	if end > len(s.items) {
		end = len(s.items)
	}
	chunk := s.items[s.offset:end]
	s.offset = end
	return pipeline.TaskFunc[T](func(ctx context.Context) pipeline.Seq[T] {
		return pipeline.Of(chunk)
	}), true
}

// FromSeq wraps a single Seq as a single-task Stream. Useful for sources
// that are naturally lazy (including infinite) rather than pre-sliced.
func FromSeq[T any](seq pipeline.Seq[T]) pipeline.Stream[T] {
	return &seqStream[T]{seq: seq}
}

type seqStream[T any] struct {
	mu   sync.Mutex
	seq  pipeline.Seq[T]
	done bool
}

func (s *seqStream[T]) SizeHint() pipeline.SizeHint { return pipeline.SizeHint{} }

func (s *seqStream[T]) NextTask(ctx context.Context) (pipeline.Task[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return nil, false
	}
	s.done = true
	seq := s.seq
	return pipeline.TaskFunc[T](func(ctx context.Context) pipeline.Seq[T] {
		return pipeline.WithContext(ctx, seq)
	}), true
}
