package codec

import (
	"bytes"
	"fmt"

	"github.com/rrrsynth/rrr/aig"
)

// appendVarint appends x, which must be non-negative, to buf as a
// little-endian base-128 varint: each byte carries 7 bits of payload,
// with the high bit set on every byte but the last.
func appendVarint(buf []byte, x int) []byte {
	if x < 0 {
		panic(fmt.Sprintf("codec: appendVarint of negative value %d", x))
	}
	for x&^0x7f != 0 {
		buf = append(buf, byte(x&0x7f)|0x80)
		x >>= 7
	}
	return append(buf, byte(x))
}

// readVarint decodes one varint from r.
func readVarint(r *bytes.Reader) (int, error) {
	x := 0
	shift := uint(0)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("codec: truncated varint: %w", aig.ErrMalformedInput)
		}
		x |= int(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	return x, nil
}
