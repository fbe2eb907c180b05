package bitpacket

import (
	"encoding/binary"
)

// Cursor reads values of arbitrary bit width out of a byte buffer. Bits are
// addressed most significant first, so bit 0 is the high bit of buf[0]. The
// buffer is never modified; only the position moves.
type Cursor struct {
	buf  []byte
	bits uint // number of addressable bits in buf
	pos  uint
}

// NewCursor expands the hex digits in s into a cursor holding four bits per
// digit. Surrounding whitespace is ignored.
func NewCursor(s string) (*Cursor, error) {
	buf, bits, err := expandHex(s)
	if err != nil {
		return nil, err
	}
	return NewCursorBytes(buf, bits), nil
}

// NewCursorBytes returns a cursor over the first bits bits of buf. If bits is
// larger than the buffer it is clamped.
func NewCursorBytes(buf []byte, bits uint) *Cursor {
	if limit := uint(len(buf)) * 8; bits > limit {
		bits = limit
	}
	return &Cursor{buf: buf, bits: bits}
}

func (c *Cursor) Position() uint  { return c.pos }
func (c *Cursor) Len() uint       { return c.bits }
func (c *Cursor) Remaining() uint { return c.bits - c.pos }

// rawRead returns the 8 bytes starting at byte n as a big endian value,
// padding with zeros past the end of the buffer.
func (c *Cursor) rawRead(n uint) uint64 {
	var tmp [8]byte
	if n < uint(len(c.buf)) {
		copy(tmp[:], c.buf[n:])
	}
	return binary.BigEndian.Uint64(tmp[:])
}

// peek returns the n bits at bit offset b. n must be no more than 64 - 8 == 56
// so that the value fits after dropping the leading b%8 bits.
func (c *Cursor) peek(b, n uint) uint64 {
	if n == 0 {
		return 0
	}
	return c.rawRead(b/8) << (b % 8) >> (64 - n)
}

// ReadBits returns the next n bits as an unsigned integer with the first bit
// read as the most significant, and advances past them. n may be at most 64.
// If fewer than n bits remain, an OutOfBits error is returned and the
// position does not move.
func (c *Cursor) ReadBits(n uint) (uint64, error) {
	if n > 64 {
		return 0, Error.New("cannot read %d bits into a uint64", n)
	}
	if n > c.Remaining() {
		return 0, OutOfBits.New("need %d bits at offset %d, have %d", n, c.pos, c.Remaining())
	}

	var v uint64
	if n <= 56 {
		v = c.peek(c.pos, n)
	} else {
		v = c.peek(c.pos, 32)<<(n-32) | c.peek(c.pos+32, n-32)
	}
	c.pos += n
	return v, nil
}

// ReadBit is ReadBits(1) as a bool.
func (c *Cursor) ReadBit() (bool, error) {
	v, err := c.ReadBits(1)
	return v == 1, err
}
