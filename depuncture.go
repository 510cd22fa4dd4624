package viterbi

// depuncture expands a punctured soft-symbol stream into the full-rate
// stream the forward recursion expects, inserting a neutral (zero) sample
// at each position named in punc. punc must be sorted ascending; out must
// be sized for the full-rate length. Sizing mismatches between in, punc,
// and out are the caller's responsibility (§4.2): depuncture walks out
// front to back and simply stops filling from in once punc accounts for
// the remainder.
func depuncture(in []int8, punc []int, out []int8) {
	next := 0
	m := 0
	for i := range out {
		if next < len(punc) && punc[next] == i {
			out[i] = 0
			next++
			continue
		}
		if m < len(in) {
			out[i] = in[m]
			m++
		}
	}
}
