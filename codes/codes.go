// Package codes supplies a small registry of ready-to-use convolutional
// code descriptors, built from generator polynomials in the same style
// the air-interface standards that motivate this package publish them:
// a constraint length, a feedback polynomial for recursive codes, and
// one feedforward polynomial per output.
package codes

import "github.com/dbehnke/viterbi"

// reverseBits reverses the low width bits of v. trellis construction
// reconciles two register conventions with exactly this operation; the
// table builders below need it to go the same direction the tables will
// be read back in, i.e. generate the tables in the "natural" convention
// and store them in the bit-reversed one the transition tables expect.
func reverseBits(v uint32, width int) uint32 {
	var r uint32
	for i := 0; i < width; i++ {
		if v&(1<<uint(i)) != 0 {
			r |= 1 << uint(width-1-i)
		}
	}
	return r
}

func parity(v uint32) uint32 {
	var p uint32
	for v != 0 {
		p ^= v & 1
		v >>= 1
	}
	return p
}

// buildFeedforward constructs a non-recursive code. Each entry in polys
// is a K-bit generator mask, bit 0 tapping the bit about to enter the
// register and bit (K-1) tapping the oldest remembered bit; every mask
// must have bit 0 set so that the two transitions into a butterfly
// partner pair produce bitwise-complementary outputs, which is what
// lets the decoder's forward recursion spend one dot product on both
// of them.
func buildFeedforward(k, n, length int, term viterbi.TermMode, polys []uint32, punc []int) viterbi.Code {
	ns := 1 << uint(k-1)
	next := make([][2]uint16, ns)

	for j := 0; j < ns; j++ {
		p := uint32(j)
		for c := uint32(0); c < 2; c++ {
			window := (p << 1) | c
			var word uint32
			for i := 0; i < n; i++ {
				word |= parity(window&polys[i]) << uint(i)
			}
			next[j][c] = uint16(reverseBits(word, n))
		}
	}

	return viterbi.Code{
		K:          k,
		N:          n,
		Len:        length,
		Term:       term,
		NextOutput: next,
		Puncture:   punc,
	}
}

// buildRecursiveSystematic constructs a recursive systematic code: output
// 0 always carries the raw information bit, and the register shifts in
// that bit XORed with a feedback tap over the remembered bits (fbPoly,
// a (K-1)-bit mask). polys supplies the K-bit feedforward mask for each
// of the remaining N-1 outputs; each must also have bit 0 set, tapping
// the feedback-modified bit rather than the raw information bit.
func buildRecursiveSystematic(k, n, length int, term viterbi.TermMode, fbPoly uint32, polys []uint32, punc []int) viterbi.Code {
	ns := 1 << uint(k-1)
	next := make([][2]uint16, ns)
	termOut := make([]uint16, ns)

	for j := 0; j < ns; j++ {
		p := uint32(j)
		fb := parity(p & fbPoly)
		termOut[j] = uint16(fb) << uint(n-1)

		for c := uint32(0); c < 2; c++ {
			d := c ^ fb
			window := (p << 1) | d
			word := c // bit 0 is the systematic copy of the information bit
			for i := 0; i < n-1; i++ {
				word |= parity(window&polys[i]) << uint(i+1)
			}
			next[j][c] = uint16(reverseBits(word, n))
		}
	}

	return viterbi.Code{
		K:              k,
		N:              n,
		Len:            length,
		Term:           term,
		NextOutput:     next,
		NextTermOutput: termOut,
		Puncture:       punc,
	}
}

// Reference generator polynomials, K-bit masks with bit 0 as the tap on
// the bit about to enter the register. The pairs at K=5/N=2 and
// K=7/N=2 are the classic rate-1/2 polynomials used across GSM and the
// NASA/Voyager-derived codes cited throughout the convolutional-coding
// literature; the extra taps for N=3/4 extend them in the same style.
const (
	polyK5G0 = 0x19
	polyK5G1 = 0x1B
	polyK5G2 = 0x15
	polyK5G3 = 0x1D

	polyK7G0 = 0x6D
	polyK7G1 = 0x4F
	polyK7G2 = 0x57
	polyK7G3 = 0x6B

	fbK7 = 0x2D
)

// GSMXCCH is a rate-1/2, K=5, zero-flushed code in the style of GSM's
// control-channel (xCCH) convolutional code.
var GSMXCCH = buildFeedforward(5, 2, 224, viterbi.Flush,
	[]uint32{polyK5G0, polyK5G1}, nil)

// GSMTCHAFS is a rate-1/3, K=5, zero-flushed code in the style of GSM's
// full-rate speech traffic channel coding.
var GSMTCHAFS = buildFeedforward(5, 3, 182, viterbi.Flush,
	[]uint32{polyK5G0, polyK5G1, polyK5G2}, nil)

// GMRTCH3Speech is a rate-1/4, K=5, zero-flushed code in the style of
// the GMR-1 TCH3 speech channel, which spends the extra redundancy a
// satellite link needs.
var GMRTCH3Speech = buildFeedforward(5, 4, 140, viterbi.Flush,
	[]uint32{polyK5G0, polyK5G1, polyK5G2, polyK5G3}, nil)

// WiMAXFCH is a rate-1/2, K=7, truncated code in the style of the
// WiMAX Frame Control Header, which carries no tail and is decoded by
// picking the best terminal state directly.
var WiMAXFCH = buildFeedforward(7, 2, 48, viterbi.Truncate,
	[]uint32{polyK7G0, polyK7G1}, nil)

// LTEPBCHLike is a rate-1/2, K=7, recursive systematic, tail-biting
// code in the style of LTE's broadcast-channel coding, where the
// encoder's start and end register contents are required to match.
var LTEPBCHLike = buildRecursiveSystematic(7, 2, 40, viterbi.TailBiting,
	fbK7, []uint32{polyK7G1}, nil)

// ConvTrunc is a small rate-1/2, K=5, truncated code used to exercise
// the TRUNCATE termination path without a flush tail.
var ConvTrunc = buildFeedforward(5, 2, 24, viterbi.Truncate,
	[]uint32{polyK5G0, polyK5G1}, nil)

var registry = map[string]viterbi.Code{
	"gsm-xcch":    GSMXCCH,
	"gsm-tch-afs": GSMTCHAFS,
	"gmr-tch3":    GMRTCH3Speech,
	"wimax-fch":   WiMAXFCH,
	"lte-pbch":    LTEPBCHLike,
	"conv-trunc":  ConvTrunc,
}

// Register adds or replaces a named code descriptor in the package
// registry, so a caller's own descriptors can be looked up by name
// alongside the built-in reference set.
func Register(name string, code viterbi.Code) {
	registry[name] = code
}

// Lookup returns the named code descriptor and whether it was found.
func Lookup(name string) (viterbi.Code, bool) {
	c, ok := registry[name]
	return c, ok
}

// Names returns the registered code names in no particular order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	return names
}
