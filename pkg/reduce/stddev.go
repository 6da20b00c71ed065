package reduce

import "math"

// sdState is Welford's online variance state: Count items folded, the
// running Mean, and M2 — the running sum of squared deviations from Mean
// (what the original calls `variance` before the final sqrt).
type sdState struct {
	Count uint64
	Mean  float64
	M2    float64
}

func sdZero() sdState { return sdState{} }

// sdPush is the classic single-pass Welford variance update (StepA).
func sdPush(s sdState, item float64) sdState {
	s.Count++
	delta := item - s.Mean
	s.Mean += delta / float64(s.Count)
	delta2 := item - s.Mean
	s.M2 += delta * delta2
	return s
}

// sdMerge is Chan et al.'s parallel-variance combination (StepB): merges
// two (count, mean, M2) triples into one without revisiting any item.
func sdMerge(a, b sdState) sdState {
	if a.Count == 0 {
		return b
	}
	if b.Count == 0 {
		return a
	}
	n1, n2 := float64(a.Count), float64(b.Count)
	meanDiff := a.Mean - b.Mean
	total := n1 + n2
	mean := (n1*a.Mean + n2*b.Mean) / total
	m2 := a.M2 + b.M2 + meanDiff*meanDiff*n1*n2/total
	return sdState{Count: a.Count + b.Count, Mean: mean, M2: m2}
}

func sdVariance(s sdState) float64 {
	if s.Count < 2 {
		return 0
	}
	return s.M2 / float64(s.Count-1)
}

// StdDev reduces a stream of floats to their sample standard deviation.
func StdDev() Tree[float64, sdState, float64] {
	return Tree[float64, sdState, float64]{
		Stage:  FolderIdentity(sdZero, sdPush),
		Merge:  CombinerOver(sdMerge),
		Finish: func(s sdState) float64 { return math.Sqrt(sdVariance(s)) },
	}
}

// Variance reduces a stream of floats to their sample variance, the same
// merge tree as StdDev without the final square root.
func Variance() Tree[float64, sdState, float64] {
	return Tree[float64, sdState, float64]{
		Stage:  FolderIdentity(sdZero, sdPush),
		Merge:  CombinerOver(sdMerge),
		Finish: sdVariance,
	}
}
