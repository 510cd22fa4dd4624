package viterbi

// metricsK7N3 is the branch-metric kernel for K=7, N=3 codes. One
// trellis column, 64 states.
func metricsK7N3(seq []int8, outputs []int16, oldSums, newSums, pathCol []int16, norm bool) {
	runColumn(64, 4, seq, outputs, oldSums, newSums, pathCol, norm)
}
