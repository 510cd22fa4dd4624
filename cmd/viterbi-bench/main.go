// Command viterbi-bench exercises a registered code descriptor end to
// end: it encodes a random information block, adds noise, decodes it,
// and reports bit error rate and throughput.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/dbehnke/viterbi"
	"github.com/dbehnke/viterbi/codes"
	"github.com/dbehnke/viterbi/internal/bitio"
)

func main() {
	codeName := flag.String("code", "gsm-xcch", "registered code to benchmark")
	trials := flag.Int("trials", 100, "number of blocks to encode and decode")
	noise := flag.Float64("noise", 40, "gaussian noise standard deviation added to each +-100 channel sample")
	seed := flag.Int64("seed", 1, "random seed")
	list := flag.Bool("list", false, "list registered codes and exit")
	flag.Parse()

	if *list {
		fmt.Println(strings.Join(codes.Names(), "\n"))
		return
	}

	code, ok := codes.Lookup(*codeName)
	if !ok {
		log.Fatalf("viterbi-bench: unknown code %q (use -list)", *codeName)
	}

	dec, err := viterbi.NewDecoder(code)
	if err != nil {
		log.Fatalf("viterbi-bench: %v", err)
	}

	rng := rand.New(rand.NewSource(*seed))
	var totalBits, errBits, errBytes int
	start := time.Now()

	msgBytes := make([]byte, (code.Len+7)/8)
	for t := 0; t < *trials; t++ {
		// The information block arrives as packed bytes off the wire,
		// the same way GSM/LTE/WiMAX payloads do; unpack MSB-first into
		// the per-bit form the encoder/decoder operate on.
		rng.Read(msgBytes)
		msg := bitio.Unpack(msgBytes, code.Len)

		clean, err := viterbi.Encode(code, msg)
		if err != nil {
			log.Fatalf("viterbi-bench: encode: %v", err)
		}

		soft := make([]int8, len(clean))
		for i, c := range clean {
			sample := float64(c)*100 + rng.NormFloat64()**noise
			soft[i] = quantize(sample)
		}

		got, err := dec.Decode(soft)
		if err != nil {
			log.Fatalf("viterbi-bench: decode: %v", err)
		}

		for i := range msg {
			if got[i] != msg[i] {
				errBits++
			}
		}

		// Repack the decoded bits to report byte-level errors too, the
		// unit a caller storing the payload back to a frame buffer cares
		// about.
		gotBytes := bitio.Pack(got[:code.Len])
		for i := range msgBytes {
			if gotBytes[i] != msgBytes[i] {
				errBytes++
			}
		}

		totalBits += code.Len
	}

	elapsed := time.Since(start)
	ber := float64(errBits) / float64(totalBits)
	log.Printf("code=%s trials=%d bits=%d errors=%d ber=%.6f byte_errors=%d elapsed=%s throughput=%.0f bits/s",
		*codeName, *trials, totalBits, errBits, ber, errBytes, elapsed, float64(totalBits)/elapsed.Seconds())
}

func quantize(v float64) int8 {
	if v > 127 {
		return 127
	}
	if v < -127 {
		return -127
	}
	return int8(v)
}
