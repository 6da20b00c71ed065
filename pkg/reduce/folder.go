package reduce

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

// folderReducer is the Reducer built from a FolderSync-style definition:
// zero() seeds the state, push(state, item) folds one item in, done(state)
// projects the final Done value. This is the authoring style count, mean,
// stddev, histogram, collect, fold and the sampling reducers are built from.
type folderReducer[I, S, D any] struct {
	zero func() S
	push func(S, I) S
	done func(S) D

	state     S
	seeded    bool
}

// Folder builds a Reducer factory from a zero/push/done triple.
func Folder[I, S, D any](zero func() S, push func(S, I) S, done func(S) D) Factory[Reducer[I, D]] {
	return FactoryFunc[Reducer[I, D]](func() Reducer[I, D] {
		return &folderReducer[I, S, D]{zero: zero, push: push, done: done}
	})
}

// FolderIdentity builds a Reducer whose Done value is exactly its state
// (no projection step needed), the common case for count/mean/stddev.
func FolderIdentity[I, S any](zero func() S, push func(S, I) S) Factory[Reducer[I, S]] {
	return Folder(zero, push, func(s S) S { return s })
}

func (r *folderReducer[I, S, D]) ensureSeeded() {
	if !r.seeded {
		r.state = r.zero()
		r.seeded = true
	}
}

func (r *folderReducer[I, S, D]) Push(ctx context.Context, in pipeline.Seq[I]) {
	r.ensureSeeded()
	in(func(item I) bool {
		select {
		case <-ctx.Done():
			return false
		default:
		}
		r.state = r.push(r.state, item)
		return true
	})
}

func (r *folderReducer[I, S, D]) Output() D {
	r.ensureSeeded()
	return r.done(r.state)
}
