package bitpacket

import "math/big"

// Type is the 3 bit type id of a packet. TypeLiteral marks a literal; every
// other value is an operator.
type Type uint8

const (
	TypeSum     Type = 0
	TypeProduct Type = 1
	TypeMinimum Type = 2
	TypeMaximum Type = 3
	TypeLiteral Type = 4
	TypeGreater Type = 5
	TypeLess    Type = 6
	TypeEqual   Type = 7
)

var typeNames = [...]string{"sum", "product", "min", "max", "literal", "gt", "lt", "eq"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

func (t Type) Comparison() bool { return t == TypeGreater || t == TypeLess || t == TypeEqual }

// LengthMode is the length-type-id of an operator: whether its children are
// bounded by a total bit count or by a packet count.
type LengthMode uint8

const (
	LengthBits  LengthMode = 0
	LengthCount LengthMode = 1
)

// field widths of the wire format
const (
	versionBits   = 3
	typeBits      = 3
	headerBits    = versionBits + typeBits
	groupBits     = 5
	modeBits      = 1
	totalLenBits  = 15
	countLenBits  = 11
	groupMoreFlag = 1 << (groupBits - 1)
	groupDataMask = groupMoreFlag - 1
)

// prefixBits returns the width of the length field that follows the mode bit.
func (m LengthMode) prefixBits() uint {
	if m == LengthCount {
		return countLenBits
	}
	return totalLenBits
}

// Packet is a decoded packet. A literal has Type == TypeLiteral, a non-nil
// Literal and no Children. An operator has any other Type and at least one
// child, in the order they appeared in the stream.
//
// BitLength is the number of stream bits covered by the packet and all of
// its descendants, including headers and length prefixes.
type Packet struct {
	Version   uint8
	Type      Type
	BitLength uint

	Literal *big.Int
	Groups  int // number of 5 bit groups in a literal

	Mode     LengthMode
	Children []*Packet
}

func (p *Packet) IsLiteral() bool { return p.Type == TypeLiteral }

// NewLiteral returns a literal packet holding v. The bit length is the one
// the minimal encoding of v would have.
func NewLiteral(version uint8, v *big.Int) *Packet {
	groups := (v.BitLen() + 3) / 4
	if groups == 0 {
		groups = 1
	}
	return &Packet{
		Version:   version,
		Type:      TypeLiteral,
		BitLength: headerBits + groupBits*uint(groups),
		Literal:   new(big.Int).Set(v),
		Groups:    groups,
	}
}

// NewOperator returns an operator packet over children with the bit length
// it would have when encoded with the given mode.
func NewOperator(version uint8, typ Type, mode LengthMode, children ...*Packet) *Packet {
	length := headerBits + modeBits + mode.prefixBits()
	for _, ch := range children {
		length += ch.BitLength
	}
	return &Packet{
		Version:   version,
		Type:      typ,
		BitLength: length,
		Mode:      mode,
		Children:  children,
	}
}

// Walk calls fn for p and every descendant in stream order, stopping early
// if fn returns false.
func (p *Packet) Walk(fn func(*Packet) bool) bool {
	if !fn(p) {
		return false
	}
	for _, ch := range p.Children {
		if !ch.Walk(fn) {
			return false
		}
	}
	return true
}

// Count returns the number of packets in the tree rooted at p.
func (p *Packet) Count() (n int) {
	p.Walk(func(*Packet) bool { n++; return true })
	return n
}

// Depth returns the nesting depth of the tree rooted at p. A lone literal
// has depth 1.
func (p *Packet) Depth() int {
	d := 0
	for _, ch := range p.Children {
		if cd := ch.Depth(); cd > d {
			d = cd
		}
	}
	return d + 1
}
