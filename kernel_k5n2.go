package viterbi

// metricsK5N2 is the branch-metric kernel for K=5, N=2 codes (e.g. GSM
// xCCH, YSF voice). One trellis column, 16 states.
func metricsK5N2(seq []int8, outputs []int16, oldSums, newSums, pathCol []int16, norm bool) {
	runColumn(16, 2, seq, outputs, oldSums, newSums, pathCol, norm)
}
