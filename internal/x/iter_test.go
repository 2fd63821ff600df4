package x

import (
	"maps"
	"slices"
	"testing"
)

func TestFilter2Values(t *testing.T) {
	seq := maps.All(map[string]int{"a": 1, "b": 2, "c": 3, "d": 4})

	even := Values(Filter2(seq, func(_ string, v int) bool { return v%2 == 0 }))
	got := slices.Sorted(even)

	if !slices.Equal(got, []int{2, 4}) {
		t.Errorf("got %v, want [2 4]", got)
	}
}

func TestValuesStopsEarly(t *testing.T) {
	seq := slices.All([]string{"a", "b", "c"})

	var got []string
	for v := range Values(seq) {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %v", got)
	}
}
