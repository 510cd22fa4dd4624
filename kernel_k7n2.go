package viterbi

// metricsK7N2 is the branch-metric kernel for K=7, N=2 codes (e.g.
// WiMAX FCH). One trellis column, 64 states.
func metricsK7N2(seq []int8, outputs []int16, oldSums, newSums, pathCol []int16, norm bool) {
	runColumn(64, 2, seq, outputs, oldSums, newSums, pathCol, norm)
}
