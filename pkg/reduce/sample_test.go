package reduce

import "testing"

func TestSampleUnstableBoundedByK(t *testing.T) {
	tr := SampleUnstable[int](3, func(v int) string { return string(rune('a' + v)) })
	got := runTree(tr, [][]int{{1, 2, 3, 4, 5, 6, 7}})
	if len(got) != 3 {
		t.Fatalf("got %d items, want at most k=3: %v", len(got), got)
	}
}

func TestSampleUnstableDeterministic(t *testing.T) {
	keyFn := func(v int) string { return string(rune('a' + v)) }
	a := runTree(SampleUnstable[int](3, keyFn), [][]int{{1, 2, 3, 4, 5}})
	b := runTree(SampleUnstable[int](3, keyFn), [][]int{{1, 2, 3, 4, 5}})
	if len(a) != len(b) {
		t.Fatalf("two runs over identical input disagreed: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sampling isn't deterministic: %v vs %v", a, b)
		}
	}
}

func TestMostFrequentOrdersByCountDescending(t *testing.T) {
	less := func(a, b string) bool { return a < b }
	got := runTree(MostFrequent[string](2, less), [][]string{
		{"a", "a", "a", "b", "b", "c"},
	})
	if len(got) != 2 {
		t.Fatalf("got %d buckets, want 2", len(got))
	}
	if got[0].Key != "a" || got[0].Count != 3 {
		t.Fatalf("got top bucket %+v, want a:3", got[0])
	}
	if got[1].Key != "b" || got[1].Count != 2 {
		t.Fatalf("got second bucket %+v, want b:2", got[1])
	}
}

func TestMostDistinctNoDoubleCountingAcrossTasks(t *testing.T) {
	keyFn := func(v int) string { return string(rune('a' + v%5)) }
	tr := MostDistinct[int](keyFn)
	// Same 5 distinct keys repeated, split across three tasks: the
	// distinct count must stay close to 5 regardless of how it's chunked.
	items := make([]int, 0, 30)
	for i := 0; i < 30; i++ {
		items = append(items, i)
	}
	got := runTree(tr, [][]int{items[:10], items[10:20], items[20:]})
	if got < 4 || got > 7 {
		t.Fatalf("got approximate distinct count %d, want close to 5", got)
	}
}
