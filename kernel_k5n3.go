package viterbi

// metricsK5N3 is the branch-metric kernel for K=5, N=3 codes. One
// trellis column, 16 states.
func metricsK5N3(seq []int8, outputs []int16, oldSums, newSums, pathCol []int16, norm bool) {
	runColumn(16, 4, seq, outputs, oldSums, newSums, pathCol, norm)
}
