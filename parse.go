package bitpacket

import (
	"math/big"

	"github.com/zeebo/mon"
)

// Options control how Decode treats a transmission.
type Options struct {
	// StrictPadding requires that the bits after the root packet are all
	// zero and fewer than four, i.e. that they are only the padding needed
	// to reach a whole hex digit. By default trailing bits are ignored.
	StrictPadding bool
}

// Decode parses the root packet out of a hex transmission. Any bits after the
// root packet are ignored.
func Decode(s string) (p *Packet, err error) {
	defer mon.Start().Stop(&err)
	return DecodeWith(s, Options{})
}

// DecodeWith is Decode with options.
func DecodeWith(s string, opts Options) (p *Packet, err error) {
	c, err := NewCursor(s)
	if err != nil {
		return nil, err
	}

	p, err = Parse(c)
	if err != nil {
		return nil, err
	}

	if opts.StrictPadding {
		if err := checkPadding(c); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func checkPadding(c *Cursor) error {
	rem := c.Remaining()
	if rem >= 4 {
		return BadPadding.New("%d unused bits after root packet at offset %d", rem, c.Position())
	}
	v, err := c.ReadBits(rem)
	if err != nil {
		return err
	}
	if v != 0 {
		return BadPadding.New("non-zero padding %0*b after root packet", int(rem), v)
	}
	return nil
}

var parseThunk mon.Thunk

// Parse decodes exactly one packet and all of its descendants starting at the
// cursor's position, leaving the cursor just past it. On error the returned
// packet is nil and the cursor position is unspecified.
func Parse(c *Cursor) (p *Packet, err error) {
	timer := parseThunk.Start()
	p, err = parsePacket(c)
	timer.Stop(&err)
	return p, err
}

func parsePacket(c *Cursor) (*Packet, error) {
	start := c.Position()

	version, err := c.ReadBits(versionBits)
	if err != nil {
		return nil, err
	}
	typ, err := c.ReadBits(typeBits)
	if err != nil {
		return nil, err
	}

	p := &Packet{
		Version: uint8(version),
		Type:    Type(typ),
	}

	if p.Type == TypeLiteral {
		p.Literal, p.Groups, err = parseLiteral(c)
	} else {
		p.Mode, p.Children, err = parseOperator(c)
	}
	if err != nil {
		return nil, err
	}

	p.BitLength = c.Position() - start
	return p, nil
}

// parseLiteral reads 5 bit groups until one has a clear continuation flag,
// concatenating the low 4 bits of each.
func parseLiteral(c *Cursor) (*big.Int, int, error) {
	// accumulate into a uint64 and only spill into the big.Int when the next
	// nibble would not fit.
	var (
		val    = new(big.Int)
		acc    uint64
		accLen uint
		groups int
	)

	for {
		group, err := c.ReadBits(groupBits)
		if err != nil {
			return nil, 0, err
		}
		groups++

		if accLen == 64 {
			val.Lsh(val, 64)
			val.Or(val, new(big.Int).SetUint64(acc))
			acc, accLen = 0, 0
		}
		acc = acc<<4 | group&groupDataMask
		accLen += 4

		if group&groupMoreFlag == 0 {
			break
		}
	}

	val.Lsh(val, accLen)
	val.Or(val, new(big.Int).SetUint64(acc))
	return val, groups, nil
}

func parseOperator(c *Cursor) (LengthMode, []*Packet, error) {
	bit, err := c.ReadBits(modeBits)
	if err != nil {
		return 0, nil, err
	}
	mode := LengthMode(bit)

	prefix, err := c.ReadBits(mode.prefixBits())
	if err != nil {
		return 0, nil, err
	}
	if prefix == 0 {
		return 0, nil, MalformedOperator.New("operator at offset %d declares no sub-packets", c.Position())
	}

	var children []*Packet
	switch mode {
	case LengthBits:
		children, err = parseChildrenByBits(c, uint(prefix))
	case LengthCount:
		children, err = parseChildrenByCount(c, int(prefix))
	}
	if err != nil {
		return 0, nil, err
	}
	return mode, children, nil
}

// parseChildrenByBits parses children until exactly total bits are consumed.
func parseChildrenByBits(c *Cursor, total uint) ([]*Packet, error) {
	if total > c.Remaining() {
		return nil, OutOfBits.New("operator declares %d sub-packet bits at offset %d, have %d",
			total, c.Position(), c.Remaining())
	}

	start := c.Position()
	end := start + total

	var children []*Packet
	for c.Position() < end {
		ch, err := parsePacket(c)
		if err != nil {
			return nil, err
		}
		children = append(children, ch)
	}

	if c.Position() != end {
		return nil, MalformedOperator.New("sub-packets starting at offset %d use %d bits, declared %d",
			start, c.Position()-start, total)
	}
	return children, nil
}

// parseChildrenByCount parses exactly count children.
func parseChildrenByCount(c *Cursor, count int) ([]*Packet, error) {
	children := make([]*Packet, 0, count)
	for i := 0; i < count; i++ {
		ch, err := parsePacket(c)
		if err != nil {
			return nil, err
		}
		children = append(children, ch)
	}
	return children, nil
}
