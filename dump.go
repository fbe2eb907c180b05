package bitpacket

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// String renders the tree as an s-expression, e.g. "(sum v1 (literal v6 1) (literal v2 2))".
func (p *Packet) String() string {
	var sb strings.Builder
	p.writeSexp(&sb)
	return sb.String()
}

func (p *Packet) writeSexp(sb *strings.Builder) {
	fmt.Fprintf(sb, "(%s v%d", p.Type, p.Version)
	if p.IsLiteral() {
		fmt.Fprintf(sb, " %v", p.Literal)
	}
	for _, ch := range p.Children {
		sb.WriteByte(' ')
		ch.writeSexp(sb)
	}
	sb.WriteByte(')')
}

// Dump writes one line per packet to w with its type, version, bit length
// and either literal value or length mode, children indented under their
// parent.
func Dump(w io.Writer, p *Packet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "packet\tversion\tbits\tdetail\n")
	dumpPacket(tw, p, 0)
	return tw.Flush()
}

func dumpPacket(w io.Writer, p *Packet, depth int) {
	indent := strings.Repeat("  ", depth)
	if p.IsLiteral() {
		fmt.Fprintf(w, "%s%s\t%d\t%d\t%v (%d groups)\n",
			indent, p.Type, p.Version, p.BitLength, p.Literal, p.Groups)
		return
	}

	detail := fmt.Sprintf("%d children by count", len(p.Children))
	if p.Mode == LengthBits {
		detail = fmt.Sprintf("%d children by length", len(p.Children))
	}
	fmt.Fprintf(w, "%s%s\t%d\t%d\t%s\n", indent, p.Type, p.Version, p.BitLength, detail)
	for _, ch := range p.Children {
		dumpPacket(w, ch, depth+1)
	}
}
