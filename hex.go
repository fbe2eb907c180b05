package bitpacket

import "strings"

// expandHex packs the hex digits of s into bytes, high nibble first, and
// reports how many bits they cover. Unlike encoding/hex an odd number of
// digits is fine: every digit is exactly four bits of the stream.
func expandHex(s string) (buf []byte, bits uint, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, 0, BadInput.New("empty transmission")
	}

	buf = make([]byte, (len(s)+1)/2)
	for i := 0; i < len(s); i++ {
		nib, ok := fromHexChar(s[i])
		if !ok {
			return nil, 0, BadInput.New("invalid hex digit %q at offset %d", s[i], i)
		}
		buf[i/2] |= nib << (4 * uint(1-i%2))
	}

	return buf, 4 * uint(len(s)), nil
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
