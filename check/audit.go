package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/zeebo/bitpacket"
	"github.com/zeebo/errs"
	"github.com/zeebo/pcg"
)

const hexDigits = "0123456789ABCDEF"

// randomHex returns between 1 and maxDigits random hex digits.
func randomHex(rng *pcg.T, maxDigits int) string {
	n := 1 + int(rng.Uint32n(uint32(maxDigits)))
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = hexDigits[rng.Uint32n(16)]
	}
	return string(buf)
}

// outcome names the result of decoding and evaluating one transmission.
func outcome(err error) (string, bool) {
	switch {
	case err == nil:
		return "ok", true
	case bitpacket.OutOfBits.Has(err):
		return "out of bits", true
	case bitpacket.MalformedOperator.Has(err):
		return "malformed operator", true
	case bitpacket.InvalidOperator.Has(err):
		return "invalid operator", true
	case bitpacket.BadPadding.Has(err):
		return "bad padding", true
	}
	return "", false
}

type tally map[string]int

// audit decodes n random transmissions and counts the outcomes. Every failure
// must belong to one of the decoder's error classes.
func audit(rng *pcg.T, n int, opts bitpacket.Options) (tally, error) {
	counts := make(tally)
	for i := 0; i < n; i++ {
		hex := randomHex(rng, 64)

		p, err := bitpacket.DecodeWith(hex, opts)
		if err == nil {
			_, err = bitpacket.Evaluate(p)
		}

		name, ok := outcome(err)
		if !ok {
			return nil, errs.New("unclassified failure for %s: %v", hex, err)
		}
		counts[name]++
	}
	return counts, nil
}

func (t tally) print(w io.Writer) error {
	names := make([]string, 0, len(t))
	total := 0
	for name, count := range t {
		names = append(names, name)
		total += count
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%d\t%0.2f%%\n", name, t[name], 100*float64(t[name])/float64(total))
	}
	return tw.Flush()
}
