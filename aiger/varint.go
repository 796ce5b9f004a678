package aiger

import (
	"bufio"
	"fmt"
)

// appendVarint appends x as a little-endian base-128 varint, the
// encoding the binary AIGER format uses for every AND gate's two
// literal deltas. Mirrors codec's own varint helper; duplicated rather
// than shared because that one is unexported and the two formats are
// otherwise unrelated wire schemes that happen to use the same
// byte-level primitive.
func appendVarint(buf []byte, x int) []byte {
	if x < 0 {
		panic(fmt.Sprintf("aiger: appendVarint of negative value %d", x))
	}
	for x&^0x7f != 0 {
		buf = append(buf, byte(x&0x7f)|0x80)
		x >>= 7
	}
	return append(buf, byte(x))
}

func readVarint(br *bufio.Reader) (int, error) {
	x, shift := 0, uint(0)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("aiger: truncated varint: %w", ErrMalformedInput)
		}
		x |= int(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			break
		}
	}
	return x, nil
}
