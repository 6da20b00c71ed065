package reduce

import (
	"context"

	"github.com/constellation-rs/amadeus-go/pkg/pipeline"
)

// finishReducer wraps a Reducer[A, A] (an associative merge over some
// intermediate state A) and projects its final state through finish to
// produce the Done value. It is how a reduction tree's last stage turns
// "the merged state" into "the answer" (e.g. Mean's merged
// {mean,correction,count} state into a single float64).
type finishReducer[A, D any] struct {
	inner  Reducer[A, A]
	finish func(A) D
}

func (r *finishReducer[A, D]) Push(ctx context.Context, in pipeline.Seq[A]) { r.inner.Push(ctx, in) }
func (r *finishReducer[A, D]) Output() D                                    { return r.finish(r.inner.Output()) }

// Tree bundles the three reduction stages a multi-stage aggregation (mean,
// stddev, histogram, group_by, sample_unstable, ...) needs:
//
//   - Stage:  ReduceA, run once per task, folds raw Items into state A.
//   - Merge:  ReduceB, run once per worker process (dist only) and also the
//     associative core of ReduceC; merges two A states into one.
//   - Finish: projects a fully-merged A state into the Done value D.
//
// par uses only Stage and Merge+Finish (two-stage: ReduceA, ReduceC).
// dist additionally runs Merge on its own as ReduceB before the final
// ReduceC merge+finish — exactly the folder_par_sink!/folder_dist_sink!
// split in the original algebra.
type Tree[I, A, D any] struct {
	Stage  Factory[Reducer[I, A]]
	Merge  Factory[Reducer[A, A]]
	Finish func(A) D
}

// ReduceA is the per-task stage.
func (t Tree[I, A, D]) ReduceA() Factory[Reducer[I, A]] { return t.Stage }

// ReduceB is the per-process merge stage (dist only); its Done type stays A
// so a further ReduceC merge can run on top of it.
func (t Tree[I, A, D]) ReduceB() Factory[Reducer[A, A]] { return t.Merge }

// ReduceC is the final, single-instance merge-and-finish stage.
func (t Tree[I, A, D]) ReduceC() Reducer[A, D] {
	return &finishReducer[A, D]{inner: t.Merge.Make(), finish: t.Finish}
}
