package bitpacket

import "github.com/zeebo/errs"

var (
	// Error is the class for failures that are not part of the stream format,
	// such as misuse of a Cursor.
	Error = errs.Class("bitpacket")

	// OutOfBits is returned when the stream ends before a header, literal
	// group, length field or expected child is fully read.
	OutOfBits = errs.Class("out of bits")

	// MalformedOperator is returned when an operator's children do not
	// exactly fill its declared bit length, or when it declares no children.
	MalformedOperator = errs.Class("malformed operator")

	// InvalidOperator is returned during evaluation for an unknown type id or
	// an operator with the wrong number of operands.
	InvalidOperator = errs.Class("invalid operator")

	// BadInput is returned for transmissions that are not hex.
	BadInput = errs.Class("bad input")

	// BadPadding is returned in strict mode when the bits after the root
	// packet are not a short run of zeros.
	BadPadding = errs.Class("bad padding")
)
