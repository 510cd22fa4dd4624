package viterbi

import (
	"math/rand"
	"testing"
)

// buildTestCode mirrors codes.buildFeedforward without importing the
// codes package, keeping this package's tests free of a dependency
// cycle on its own sub-package.
func buildTestCode(k, n, length int, term TermMode, polys []uint32) Code {
	ns := numStates(k)
	next := make([][2]uint16, ns)
	for j := 0; j < ns; j++ {
		p := uint32(j)
		for c := uint32(0); c < 2; c++ {
			window := (p << 1) | c
			var word uint32
			for i := 0; i < n; i++ {
				word |= parityBits(window&polys[i]) << uint(i)
			}
			next[j][c] = uint16(bitswap(word, n))
		}
	}
	return Code{K: k, N: n, Len: length, Term: term, NextOutput: next}
}

func buildTestRecursiveCode(k, n, length int, term TermMode, fb uint32, polys []uint32) Code {
	ns := numStates(k)
	next := make([][2]uint16, ns)
	termOut := make([]uint16, ns)
	for j := 0; j < ns; j++ {
		p := uint32(j)
		f := parityBits(p & fb)
		termOut[j] = uint16(f) << uint(n-1)
		for c := uint32(0); c < 2; c++ {
			d := c ^ f
			window := (p << 1) | d
			word := c
			for i := 0; i < n-1; i++ {
				word |= parityBits(window&polys[i]) << uint(i+1)
			}
			next[j][c] = uint16(bitswap(word, n))
		}
	}
	return Code{K: k, N: n, Len: length, Term: term, NextOutput: next, NextTermOutput: termOut}
}

func parityBits(v uint32) uint32 {
	var p uint32
	for v != 0 {
		p ^= v & 1
		v >>= 1
	}
	return p
}

func noisySamples(t *testing.T, rng *rand.Rand, clean []int8, sigma float64) []int8 {
	t.Helper()
	out := make([]int8, len(clean))
	for i, c := range clean {
		v := float64(c)*100 + rng.NormFloat64()*sigma
		if v > 127 {
			v = 127
		}
		if v < -127 {
			v = -127
		}
		out[i] = int8(v)
	}
	return out
}

func TestDecodeRoundTripFlush(t *testing.T) {
	code := buildTestCode(5, 2, 64, Flush, []uint32{0x19, 0x1B})
	rng := rand.New(rand.NewSource(1))

	msg := make([]uint8, code.Len)
	for i := range msg {
		msg[i] = uint8(rng.Intn(2))
	}

	clean, err := Encode(code, msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	soft := noisySamples(t, rng, clean, 10)
	got, err := Decode(code, soft)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range msg {
		if got[i] != msg[i] {
			t.Fatalf("bit %d: want %d got %d", i, msg[i], got[i])
		}
	}
}

func TestDecodeRoundTripTruncate(t *testing.T) {
	code := buildTestCode(7, 2, 50, Truncate, []uint32{0x6D, 0x4F})
	rng := rand.New(rand.NewSource(2))

	msg := make([]uint8, code.Len)
	for i := range msg {
		msg[i] = uint8(rng.Intn(2))
	}

	clean, err := Encode(code, msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	soft := noisySamples(t, rng, clean, 5)
	got, err := Decode(code, soft)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range msg {
		if got[i] != msg[i] {
			t.Fatalf("bit %d: want %d got %d", i, msg[i], got[i])
		}
	}
}

func TestDecodeRoundTripTailBiting(t *testing.T) {
	code := buildTestRecursiveCode(7, 2, 60, TailBiting, 0x2D, []uint32{0x4F})
	rng := rand.New(rand.NewSource(3))

	msg := make([]uint8, code.Len)
	for i := range msg {
		msg[i] = uint8(rng.Intn(2))
	}

	clean, err := Encode(code, msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	soft := noisySamples(t, rng, clean, 5)
	got, err := Decode(code, soft)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range msg {
		if got[i] != msg[i] {
			t.Fatalf("bit %d: want %d got %d", i, msg[i], got[i])
		}
	}
}

func TestDecodeRoundTripPunctured(t *testing.T) {
	base := buildTestCode(5, 4, 80, Flush, []uint32{0x19, 0x1B, 0x15, 0x1D})
	punc := []int{3, 7, 11, 15}
	code := base
	code.Puncture = punc
	rng := rand.New(rand.NewSource(4))

	msg := make([]uint8, code.Len)
	for i := range msg {
		msg[i] = uint8(rng.Intn(2))
	}

	clean, err := Encode(base, msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	full := len(clean)
	punctured := make([]int8, 0, full-len(punc))
	next := 0
	for i, s := range clean {
		if next < len(punc) && punc[next] == i {
			next++
			continue
		}
		punctured = append(punctured, s)
	}

	soft := noisySamples(t, rng, punctured, 5)
	got, err := Decode(code, soft)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range msg {
		if got[i] != msg[i] {
			t.Fatalf("bit %d: want %d got %d", i, msg[i], got[i])
		}
	}
}

func TestDecodeRoundTripK7N3SingleSampleFlip(t *testing.T) {
	code := buildTestCode(7, 3, 576, Flush, []uint32{0x6D, 0x4F, 0x57})
	rng := rand.New(rand.NewSource(5))

	msg := make([]uint8, code.Len)
	for i := range msg {
		msg[i] = uint8(rng.Intn(2))
	}

	clean, err := Encode(code, msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Full-strength samples (+-127) with no added noise except a single
	// flipped sample: the decoder must still recover every payload bit.
	soft := make([]int8, len(clean))
	for i, c := range clean {
		soft[i] = c * 127
	}
	soft[0] = -soft[0]

	got, err := Decode(code, soft)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range msg {
		if got[i] != msg[i] {
			t.Fatalf("bit %d: want %d got %d", i, msg[i], got[i])
		}
	}
}

func TestDecodeRoundTripK7N4(t *testing.T) {
	code := buildTestCode(7, 4, 80, Flush, []uint32{0x6D, 0x4F, 0x57, 0x6B})
	rng := rand.New(rand.NewSource(6))

	msg := make([]uint8, code.Len)
	for i := range msg {
		msg[i] = uint8(rng.Intn(2))
	}

	clean, err := Encode(code, msg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	soft := noisySamples(t, rng, clean, 5)
	got, err := Decode(code, soft)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range msg {
		if got[i] != msg[i] {
			t.Fatalf("bit %d: want %d got %d", i, msg[i], got[i])
		}
	}
}

func TestNewDecoderValidation(t *testing.T) {
	cases := []struct {
		name string
		code Code
	}{
		{"bad N", Code{K: 5, N: 1, Len: 10}},
		{"bad Len", Code{K: 5, N: 2, Len: 0}},
		{"bad K", Code{K: 6, N: 2, Len: 10}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewDecoder(c.code); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestNewDecoderNoMemory(t *testing.T) {
	code := Code{K: 7, N: 2, Len: 1 << 30, Term: Truncate}
	if _, err := NewDecoder(code); err == nil {
		t.Fatal("expected ErrNoMemory, got nil")
	}
}

func TestDecodeRejectsShortInput(t *testing.T) {
	code := buildTestCode(5, 2, 16, Flush, []uint32{0x19, 0x1B})
	if _, err := Decode(code, make([]int8, 4)); err == nil {
		t.Fatal("expected error for short input, got nil")
	}
}
