package reduce

// Number is the set of item types the arithmetic reducers (Sum, Mean,
// StdDev) accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Sum reduces a stream of numbers to their total. The merge across tasks
// is plain addition, associative and commutative, so Sum needs no separate
// dist-stage logic beyond combining partial sums the same way.
func Sum[B Number]() Factory[Reducer[B, B]] {
	return CombinerOver(func(a, b B) B { return a + b })
}
