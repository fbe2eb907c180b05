package bitpacket

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/zeebo/pcg"
)

// bitWriter is the inverse of Cursor, used to build transmissions in tests.
type bitWriter struct {
	buf  []byte
	bits uint
}

func (w *bitWriter) write(v uint64, n uint) {
	for i := n; i > 0; i-- {
		if w.bits%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		w.buf[w.bits/8] |= byte(v>>(i-1)&1) << (7 - w.bits%8)
		w.bits++
	}
}

// hex returns the written bits as hex digits, zero padding to a whole digit
// and then adding pad extra zero digits.
func (w *bitWriter) hex(pad int) string {
	digits := int(w.bits+3) / 4
	var sb strings.Builder
	for _, b := range w.buf {
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()[:digits] + strings.Repeat("0", pad)
}

// encode writes p using the lengths and modes recorded in the tree.
func encode(w *bitWriter, p *Packet) {
	w.write(uint64(p.Version), versionBits)
	w.write(uint64(p.Type), typeBits)

	if p.IsLiteral() {
		for i := p.Groups - 1; i >= 0; i-- {
			nib := new(big.Int).Rsh(p.Literal, uint(4*i)).Uint64() & groupDataMask
			if i > 0 {
				nib |= groupMoreFlag
			}
			w.write(nib, groupBits)
		}
		return
	}

	w.write(uint64(p.Mode), modeBits)
	if p.Mode == LengthCount {
		w.write(uint64(len(p.Children)), countLenBits)
	} else {
		total := uint64(0)
		for _, ch := range p.Children {
			total += uint64(ch.BitLength)
		}
		w.write(total, totalLenBits)
	}
	for _, ch := range p.Children {
		encode(w, ch)
	}
}

func encodeHex(p *Packet) string {
	var w bitWriter
	encode(&w, p)
	return w.hex(0)
}

func lit(version uint8, v int64) *Packet { return NewLiteral(version, big.NewInt(v)) }

func randomLiteral() *big.Int {
	v := new(big.Int).SetUint64(pcg.Uint64() >> pcg.Uint32n(64))
	if pcg.Uint32n(8) == 0 {
		v.Lsh(v, 64)
		v.Or(v, new(big.Int).SetUint64(pcg.Uint64()))
	}
	return v
}

// randomTree returns a tree that always evaluates: comparisons get exactly two
// children and the whole encoding fits the 15 bit length field.
func randomTree(depth int) *Packet {
	version := uint8(pcg.Uint32n(8))
	if depth == 0 || pcg.Uint32n(3) == 0 {
		return NewLiteral(version, randomLiteral())
	}

	typ := Type(pcg.Uint32n(7))
	if typ >= TypeLiteral {
		typ++
	}

	n := 1 + int(pcg.Uint32n(3))
	if typ.Comparison() {
		n = 2
	}

	children := make([]*Packet, n)
	for i := range children {
		children[i] = randomTree(depth - 1)
	}
	return NewOperator(version, typ, LengthMode(pcg.Uint32n(2)), children...)
}
