package aiger

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rrrsynth/rrr/aig"
)

// ReadBinary parses the binary "aig" AIGER variant from br, whose
// magic word has not yet been consumed.
func ReadBinary(br *bufio.Reader) (*aig.Network, int, error) {
	h, err := readHeaderLine(br, "aig")
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

	for v := h.I + h.L + 1; v <= h.M; v++ {
		d0, err := readVarint(br)
		if err != nil {
			return nil, 0, err
		}
		d1, err := readVarint(br)
		if err != nil {
			return nil, 0, err
		}
		rhs0 := 2*v - d0
		rhs1 := rhs0 - d1
		if rhs0 < 0 || rhs1 < 0 {
			return nil, 0, fmt.Errorf("aiger: AND var %d: negative reconstructed literal: %w", v, ErrMalformedInput)
		}
		newID, err := addDecodedAnd(net, id2var, v, rhs0, rhs1)
		if err != nil {
			return nil, 0, err
		}
		id2var[v] = newID
	}

	return finishLowering(net, id2var, latchNext, poLits)
}

// WriteBinary emits net as a binary "aig" AIGER file. nLatches names
// the trailing primary inputs / leading primary outputs to describe in
// the header as latches.
func WriteBinary(w io.Writer, net *aig.Network, nLatches int) error {
	values, nNodes := computeValues(net)
	gates := decomposeAnds(net, values)

	if err := writeHeaderAndOutputs(w, "aig", net, nLatches, nNodes, len(gates), values); err != nil {
		return err
	}

	var body []byte
	for _, g := range gates {
		body = appendVarint(body, g.lhs-g.rhs0)
		body = appendVarint(body, g.rhs0-g.rhs1)
	}
	_, err := w.Write(body)
	return err
}

func readLiteralLine(br *bufio.Reader, what string, i int) (int, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return 0, fmt.Errorf("aiger: reading %s %d: %w", what, i, ErrMalformedInput)
	}
	return parseNonNegative(strings.TrimSpace(line))
}

// addDecodedAnd translates a freshly decoded (rhs0, rhs1) literal pair
// for AIGER variable v into an aig.Network AND node, honoring the
// reference's fanin order (the smaller-literal child first).
func addDecodedAnd(net *aig.Network, id2var []int, v, rhs0, rhs1 int) (int, error) {
	id0, c0, err := litToFanin(rhs1, id2var)
	if err != nil {
		return 0, err
	}
	id1, c1, err := litToFanin(rhs0, id2var)
	if err != nil {
		return 0, err
	}
	newID, err := net.AddAnd(aig.NewLit(id0, c0), aig.NewLit(id1, c1))
	if err != nil {
		return 0, fmt.Errorf("aiger: AND var %d: %w", v, err)
	}
	return newID, nil
}

// finishLowering materializes the latch next-state and ordinary output
// literals as primary outputs, latches first, completing the
// latch-to-PI/PO lowering begun when the latch PIs were created.
func finishLowering(net *aig.Network, id2var []int, latchNext, poLits []int) (*aig.Network, int, error) {
	for i, lit := range latchNext {
		id, c, err := litToFanin(lit, id2var)
		if err != nil {
			return nil, 0, err
		}
		if _, err := net.AddPo(id, c); err != nil {
			return nil, 0, fmt.Errorf("aiger: latch %d next-state output: %w", i, err)
		}
	}
	for i, lit := range poLits {
		id, c, err := litToFanin(lit, id2var)
		if err != nil {
			return nil, 0, err
		}
		if _, err := net.AddPo(id, c); err != nil {
			return nil, 0, fmt.Errorf("aiger: output %d: %w", i, err)
		}
	}
	return net, len(latchNext), nil
}

// writeHeaderAndOutputs writes the five-field header line plus one
// literal line per primary output (latch next-state functions first,
// by construction of net.Pos()), shared between the binary and ASCII
// writers; they differ only in how the AND section that follows is
// rendered.
func writeHeaderAndOutputs(w io.Writer, magic string, net *aig.Network, nLatches, nNodes, nAnds int, values []int) error {
	header := fmt.Sprintf("%s %d %d %d %d %d\n", magic, nNodes-1, net.NumPis()-nLatches, nLatches, net.NumPos()-nLatches, nAnds)
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	var writeErr error
	net.ForEachPoDriver(func(_ int, fi int, c bool) {
		if writeErr != nil {
			return
		}
		v := values[fi]
		if c {
			v ^= 1
		}
		_, writeErr = fmt.Fprintf(w, "%d\n", v)
	})
	return writeErr
}
