package aiger

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rrrsynth/rrr/aig"
)

// ReadASCII parses the ASCII "aag" AIGER variant from br, whose magic
// word has not yet been consumed. It follows the same latch/output
// literal-line layout as the binary variant; the two formats differ
// only in how AND gates are written, one line of three literals per
// gate here instead of two delta-encoded varints.
func ReadASCII(br *bufio.Reader) (*aig.Network, int, error) {
	h, err := readHeaderLine(br, "aag")
	if err != nil {
		return nil, 0, err
	}

	net := aig.New()
	id2var := make([]int, h.M+1)
	id2var[0] = aig.Const0
	for i := 1; i <= h.I; i++ {
		id2var[i] = net.AddPi()
	}

	latchNext := make([]int, h.L)
	for i := 0; i < h.L; i++ {
		lit, err := readLiteralLine(br, "latch", i)
		if err != nil {
			return nil, 0, err
		}
		latchNext[i] = lit
		id2var[h.I+1+i] = net.AddPi()
	}

	poLits := make([]int, h.O)
	for i := 0; i < h.O; i++ {
		lit, err := readLiteralLine(br, "output", i)
		if err != nil {
			return nil, 0, err
		}
		poLits[i] = lit
	}

	for i := 0; i < h.A; i++ {
		v := h.I + h.L + 1 + i
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			return nil, 0, fmt.Errorf("aiger: reading AND %d: %w", i, ErrMalformedInput)
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, 0, fmt.Errorf("aiger: AND line %q does not have 3 fields: %w", strings.TrimSpace(line), ErrMalformedInput)
		}
		lhs, err := parseNonNegative(fields[0])
		if err != nil {
			return nil, 0, err
		}
		if lhs != 2*v {
			return nil, 0, fmt.Errorf("aiger: AND %d has lhs %d, expected %d: %w", i, lhs, 2*v, ErrMalformedInput)
		}
		rhs0, err := parseNonNegative(fields[1])
		if err != nil {
			return nil, 0, err
		}
		rhs1, err := parseNonNegative(fields[2])
		if err != nil {
			return nil, 0, err
		}
		newID, err := addDecodedAnd(net, id2var, v, rhs0, rhs1)
		if err != nil {
			return nil, 0, err
		}
		id2var[v] = newID
	}

	return finishLowering(net, id2var, latchNext, poLits)
}

// WriteASCII emits net as an ASCII "aag" AIGER file.
func WriteASCII(w io.Writer, net *aig.Network, nLatches int) error {
	values, nNodes := computeValues(net)
	gates := decomposeAnds(net, values)

	if err := writeHeaderAndOutputs(w, "aag", net, nLatches, nNodes, len(gates), values); err != nil {
		return err
	}
	for _, g := range gates {
		if _, err := fmt.Fprintf(w, "%d %d %d\n", g.lhs, g.rhs0, g.rhs1); err != nil {
			return err
		}
	}
	return nil
}
