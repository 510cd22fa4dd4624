package viterbi

import "testing"

func TestDepuncture(t *testing.T) {
	in := []int8{1, 2, 3, 4}
	punc := []int{2, 5}
	out := make([]int8, 6)
	depuncture(in, punc, out)
	want := []int8{1, 2, 0, 3, 4, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], want[i])
		}
	}
}

func TestDepunctureNoPuncture(t *testing.T) {
	in := []int8{5, 6, 7}
	out := make([]int8, 3)
	depuncture(in, nil, out)
	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("out[%d] = %d, want %d", i, out[i], in[i])
		}
	}
}
