package viterbi

import "fmt"

// Encode drives a Code's trellis forward over bits and returns the
// full-rate (pre-puncture) hard channel symbols as clean bipolar
// samples (+1/-1). It exists for tests and the benchmark command,
// which both need a way to produce a signal the decoder can be
// checked against; this package otherwise only decodes.
//
// len(bits) must equal code.Len. For TailBiting codes the starting
// register must equal the register the block ends on; since the
// state space is small (at most 64 values), the correct start is
// found by trying each one and keeping the one that round-trips.
func Encode(code Code, bits []uint8) ([]int8, error) {
	if len(bits) != code.Len {
		return nil, fmt.Errorf("%w: Encode needs %d bits, got %d", ErrInvalidCode, code.Len, len(bits))
	}

	tr, err := buildTrellis(code)
	if err != nil {
		return nil, err
	}
	ns := numStates(code.K)
	olen := outLen(code.N)
	recursive := code.NextTermOutput != nil

	lenPrime := code.Len
	if code.Term == Flush {
		lenPrime = code.Len + code.K - 1
	}

	msg := make([]uint8, lenPrime)
	copy(msg, bits)

	run := func(start uint32) (uint32, []int8) {
		reg := start
		out := make([]int8, lenPrime*code.N)
		for i := 0; i < lenPrime; i++ {
			// An odd reg is the prev1 predecessor of its successors: the
			// transition emits the negation of the prev0 outputs stored in
			// the trellis, and for recursive codes carries the opposite
			// information bit.
			fromPrev1 := reg&1 == 1
			want := msg[i]
			if recursive && fromPrev1 {
				want ^= 1
			}
			dest := advance(tr, ns, reg, want)
			reg = dest
			row := tr.outputs[int(dest)*olen : int(dest)*olen+olen]
			for j := 0; j < code.N; j++ {
				v := sign(row[j])
				if fromPrev1 {
					v = -v
				}
				out[i*code.N+j] = v
			}
		}
		return reg, out
	}

	start := uint32(0)
	if code.Term == TailBiting {
		for s := uint32(0); s < uint32(ns); s++ {
			if end, _ := run(s); end == s {
				start = s
				break
			}
		}
	}

	_, out := run(start)
	return out, nil
}

// advance finds the unique trellis state reachable from reg whose
// surviving information bit is msgBit. Every state has exactly two
// predecessors (§4.3's prev0/prev1 pair) and they carry opposite
// information bits, so exactly one of reg's two successors matches.
func advance(tr *trellis, ns int, reg uint32, msgBit uint8) uint32 {
	for dest := 0; dest < ns; dest++ {
		prev0 := uint32((2 * dest) % ns)
		prev1 := prev0 + 1
		if (prev0 == reg || prev1 == reg) && tr.vals[dest] == msgBit {
			return uint32(dest)
		}
	}
	return 0
}

func sign(v int16) int8 {
	if v < 0 {
		return -1
	}
	return 1
}
