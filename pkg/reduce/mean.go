package reduce

// meanState is Welford's online mean with a Kahan compensation term, the
// same state shape the original StepA/StepB mean folder carries: Mean is
// the running mean, Correction is the Kahan lost-low-order-bits
// accumulator, and Count is how many items have been folded in so far.
type meanState struct {
	Mean       float64
	Correction float64
	Count      uint64
}

func meanZero() meanState { return meanState{} }

// meanPush folds one item in (StepA): a compensated running-mean update.
func meanPush(s meanState, item float64) meanState {
	s.Count++
	f := (item - s.Mean) / float64(s.Count)
	y := f - s.Correction
	t := s.Mean + y
	s.Correction = (t - s.Mean) - y
	s.Mean = t
	return s
}

// meanMerge pools two per-task means into one (StepB): a count-weighted
// combination of both the mean and its Kahan correction.
func meanMerge(a, b meanState) meanState {
	if a.Count == 0 {
		return b
	}
	if b.Count == 0 {
		return a
	}
	total := a.Count + b.Count
	weight := float64(b.Count) / float64(total)
	deltaMean := b.Mean - a.Mean
	deltaCorrection := b.Correction - a.Correction
	a.Mean += deltaMean * weight
	a.Correction += deltaCorrection * weight
	a.Count = total
	return a
}

// Mean reduces a stream of floats to their arithmetic mean, numerically
// stable under both per-task and cross-task (and cross-process, for dist)
// merging.
func Mean() Tree[float64, meanState, float64] {
	return Tree[float64, meanState, float64]{
		Stage:  FolderIdentity(meanZero, meanPush),
		Merge:  CombinerOver(meanMerge),
		Finish: func(s meanState) float64 { return s.Mean },
	}
}
