package viterbi

// metricKernel is the per-column branch-metric/add-compare-select contract
// every specialized (K,N) routine satisfies (§4.3): given the N soft
// samples for this column and the trellis's expected outputs, it updates
// path metrics and records one survivor decision per state.
//
// oldSums holds the metrics accumulated through the previous column;
// newSums receives this column's metrics. The two are kept separate
// (rather than mutated in place) because a destination state's two
// predecessors range over the same index space as the destinations
// themselves, so an in-place update would read already-overwritten
// values; the decoder driver ping-pongs the two buffers column to
// column, the same double-buffering ysf2dmr's convolutional codec uses
// for its metrics arrays.
type metricKernel func(seq []int8, outputs []int16, oldSums, newSums, pathCol []int16, norm bool)

// dotProduct computes the branch metric: the correlation between the
// received soft samples and a state's expected bipolar outputs. Bounded
// by |seq|<=127 and olen<=4, so it never approaches int32 overflow.
func dotProduct(seq []int8, out []int16) int32 {
	var sum int32
	for i, s := range seq {
		sum += int32(s) * int32(out[i])
	}
	return sum
}

// acs performs the add-compare-select for one destination state. Its two
// predecessors are prev0 = 2*dest mod S and prev1 = prev0+1 (§4.3); both
// reach dest on the same input bit, so the only thing the decision
// records is which predecessor's path survived, using the path-memory
// encoding from §3: -1 for prev0, 0 for prev1.
func acs(ns, dest int, bm int32, oldSums, newSums, pathCol []int16) {
	prev0 := (2 * dest) % ns
	prev1 := prev0 + 1

	m0 := int32(oldSums[prev0]) + bm
	m1 := int32(oldSums[prev1]) - bm

	if m1 > m0 {
		newSums[dest] = int16(m1)
		pathCol[dest] = 0
	} else {
		newSums[dest] = int16(m0)
		pathCol[dest] = -1
	}
}

// normalizeSums subtracts the minimum accumulated metric from every
// state so the column's values stay bounded. Any uniform shift is
// equivalent for traceback purposes (§8 property 5).
func normalizeSums(sums []int16) {
	min := sums[0]
	for _, v := range sums[1:] {
		if v < min {
			min = v
		}
	}
	for i := range sums {
		sums[i] -= min
	}
}

// runColumn is the shared core every specialized kernel below unrolls
// to. States s and s+S/2 are butterfly partners: their incoming
// transitions are generator-negatives of one another, so only one dot
// product is computed per pair and the other is its negation (§4.3
// point 2, §9).
func runColumn(ns, olen int, seq []int8, outputs, oldSums, newSums, pathCol []int16, norm bool) {
	half := ns / 2
	for i := 0; i < half; i++ {
		bm := dotProduct(seq, outputs[i*olen:i*olen+olen])
		acs(ns, i, bm, oldSums, newSums, pathCol)
		acs(ns, i+half, -bm, oldSums, newSums, pathCol)
	}
	if norm {
		normalizeSums(newSums)
	}
}

// selectKernel picks the specialized branch-metric routine for a (K,N)
// pair, the dispatch the spec calls a tagged selector chosen once at
// decoder construction (§9), mirroring alloc_vdec's metric_func switch
// in the original decoder.
func selectKernel(k, n int) (metricKernel, error) {
	switch k {
	case 5:
		switch n {
		case 2:
			return metricsK5N2, nil
		case 3:
			return metricsK5N3, nil
		case 4:
			return metricsK5N4, nil
		}
	case 7:
		switch n {
		case 2:
			return metricsK7N2, nil
		case 3:
			return metricsK7N3, nil
		case 4:
			return metricsK7N4, nil
		}
	}
	return nil, ErrInvalidCode
}
