package reduce

// Fold is the general user-authored folder sink: zero seeds the state,
// push folds one item in, done projects the final state to the Done
// value. Count/Sum/Mean/... are all specializations of this shape; Fold
// exposes it directly for callers whose aggregation isn't one of the
// built-ins.
func Fold[I, S, D any](zero func() S, push func(S, I) S, done func(S) D) Factory[Reducer[I, D]] {
	return Folder(zero, push, done)
}
