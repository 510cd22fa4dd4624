package viterbi

import "fmt"

// maxPathEntries bounds the path-memory allocation so a caller-supplied
// Len cannot silently wrap a 32-bit size computation; this is the one
// allocation failure a Go decoder can detect deterministically, standing
// in for the C decoder's malloc failure path (§7 NOMEM).
const maxPathEntries = 1 << 31

// Decoder owns the trellis, path memory, and metric state for a single
// decode. It is built once per Code by NewDecoder and is not safe for
// concurrent use (§5): one decode owns its decoder exclusively.
type Decoder struct {
	code Code
	tr   *trellis

	ns       int
	olen     int
	intrvl   int
	lenPrime int
	kernel   metricKernel

	sums    [2][]int16
	cur     int
	path    []int16
	columns [][]int16
	scratch []int8
}

// NewDecoder validates code and allocates a decoder for it (§4.6). The
// trellis is built once; the decoder is meant for a single Decode call,
// though nothing prevents reuse since Decode resets all state up front.
func NewDecoder(code Code) (*Decoder, error) {
	if code.N < 2 || code.N > 4 {
		return nil, fmt.Errorf("%w: N=%d outside [2,4]", ErrInvalidCode, code.N)
	}
	if code.Len < 1 {
		return nil, fmt.Errorf("%w: Len=%d must be >= 1", ErrInvalidCode, code.Len)
	}
	if code.K != 5 && code.K != 7 {
		return nil, fmt.Errorf("%w: K=%d not in {5,7}", ErrInvalidCode, code.K)
	}

	kernel, err := selectKernel(code.K, code.N)
	if err != nil {
		return nil, err
	}

	ns := numStates(code.K)

	lenPrime := code.Len
	if code.Term == Flush {
		lenPrime = code.Len + code.K - 1
	}

	if int64(ns)*int64(lenPrime) > maxPathEntries {
		return nil, fmt.Errorf("%w: %d states * %d columns exceeds path memory limit", ErrNoMemory, ns, lenPrime)
	}

	tr, err := buildTrellis(code)
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		code:     code,
		tr:       tr,
		ns:       ns,
		olen:     outLen(code.N),
		intrvl:   32767/(code.N*127) - code.K,
		lenPrime: lenPrime,
		kernel:   kernel,
		path:     make([]int16, ns*lenPrime),
		columns:  make([][]int16, lenPrime),
	}
	d.sums[0] = make([]int16, ns)
	d.sums[1] = make([]int16, ns)
	for i := 0; i < lenPrime; i++ {
		d.columns[i] = d.path[i*ns : (i+1)*ns]
	}

	return d, nil
}

// reset zeroes the accumulated path metrics. For termination other than
// tail-biting, state 0 is forced to dominate initially since the
// encoder is known to start there (§4.4).
func (d *Decoder) reset() {
	for i := range d.sums[0] {
		d.sums[0][i] = 0
	}
	for i := range d.sums[1] {
		d.sums[1][i] = 0
	}
	if d.code.Term != TailBiting {
		d.sums[0][0] = int16(127 * d.code.N * d.code.K)
	}
	d.cur = 0
}

// forward runs the kernel once per trellis column, normalizing on the
// interval computed at construction (§4.4).
func (d *Decoder) forward(seq []int8) {
	n := d.code.N
	for i := 0; i < d.lenPrime; i++ {
		old := d.sums[d.cur]
		next := d.sums[1-d.cur]
		norm := i%d.intrvl == 0
		d.kernel(seq[i*n:i*n+n], d.tr.outputs, old, next, d.columns[i], norm)
		d.cur = 1 - d.cur
	}
}

// Decode runs one full convolutional decode over soft: reset, optional
// depuncture, the forward recursion (twice for tail-biting so the
// initial/final state can converge), and traceback (§4.4, §4.6).
func (d *Decoder) Decode(soft []int8) ([]uint8, error) {
	seq := soft
	full := d.lenPrime * d.code.N

	if d.code.Puncture != nil {
		if cap(d.scratch) < full {
			d.scratch = make([]int8, full)
		} else {
			d.scratch = d.scratch[:full]
		}
		depuncture(soft, d.code.Puncture, d.scratch)
		seq = d.scratch
	} else if len(seq) < full {
		return nil, fmt.Errorf("%w: need %d soft samples, got %d", ErrInvalidCode, full, len(seq))
	}

	d.reset()
	d.forward(seq)
	if d.code.Term == TailBiting {
		d.forward(seq)
	}

	return d.traceback()
}

// Decode validates code and runs a single decode, mirroring the public
// entry point's allocate/decode/free lifecycle (§4.6) without the
// manual free a garbage-collected language doesn't need.
func Decode(code Code, soft []int8) ([]uint8, error) {
	d, err := NewDecoder(code)
	if err != nil {
		return nil, err
	}
	return d.Decode(soft)
}
