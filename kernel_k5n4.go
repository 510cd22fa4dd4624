package viterbi

// metricsK5N4 is the branch-metric kernel for K=5, N=4 codes (e.g. GMR
// TCH3 speech). One trellis column, 16 states.
func metricsK5N4(seq []int8, outputs []int16, oldSums, newSums, pathCol []int16, norm bool) {
	runColumn(16, 4, seq, outputs, oldSums, newSums, pathCol, norm)
}
