package aiger

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rrrsynth/rrr/aig"
)

// ErrMalformedInput is returned, wrapped, for any structurally invalid
// AIGER input: a bad magic word, a header field that does not parse,
// a count mismatch, or a literal referencing an undefined variable.
// It is the same sentinel codec's decoder uses, so callers can check
// for either package's decode failures the same way.
var ErrMalformedInput = aig.ErrMalformedInput

// Header is the five-field AIGER header line: M (total variable
// count), I (primary inputs, excluding latches), L (latches), O
// (primary outputs, excluding latch next-state functions), A (AND
// gates).
type Header struct {
	M, I, L, O, A int
}

// Read parses AIGER input from r, auto-detecting the ASCII ("aag") or
// binary ("aig") variant from its magic word. It returns the lowered
// network and the number of trailing primary inputs / leading primary
// outputs that represent latches.
func Read(r io.Reader) (net *aig.Network, nLatches int, err error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(3)
	if err != nil {
		return nil, 0, fmt.Errorf("aiger: reading magic word: %w", ErrMalformedInput)
	}
	switch string(magic) {
	case "aag":
		return ReadASCII(br)
	case "aig":
		return ReadBinary(br)
	default:
		return nil, 0, fmt.Errorf("aiger: unrecognized magic word %q: %w", magic, ErrMalformedInput)
	}
}

// Write emits net in the binary AIGER variant, the format the
// reference tooling this package is grounded on always produces.
// nLatches names the trailing primary inputs / leading primary
// outputs to describe as latches rather than ordinary ports.
func Write(w io.Writer, net *aig.Network, nLatches int) error {
	return WriteBinary(w, net, nLatches)
}

func readHeaderLine(br *bufio.Reader, magic string) (Header, error) {
	line, err := br.ReadString('\n')
	if err != nil && line == "" {
		return Header{}, fmt.Errorf("aiger: reading header: %w", ErrMalformedInput)
	}
	fields := strings.Fields(line)
	if len(fields) != 6 || fields[0] != magic {
		return Header{}, fmt.Errorf("aiger: malformed header line %q: %w", strings.TrimSpace(line), ErrMalformedInput)
	}
	var h Header
	vals := [5]*int{&h.M, &h.I, &h.L, &h.O, &h.A}
	for i, v := range vals {
		n, err := parseNonNegative(fields[i+1])
		if err != nil {
			return Header{}, err
		}
		*v = n
	}
	if h.M != h.I+h.L+h.A {
		return Header{}, fmt.Errorf("aiger: header M=%d does not equal I+L+A=%d: %w", h.M, h.I+h.L+h.A, ErrMalformedInput)
	}
	return h, nil
}

func parseNonNegative(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, fmt.Errorf("aiger: empty integer field: %w", ErrMalformedInput)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("aiger: %q is not a non-negative integer: %w", s, ErrMalformedInput)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

// litToFanin splits an AIGER literal into (variable id translated via
// lookup, complement bit). id2var maps an AIGER-numbered variable
// (0=constant, 1..M=inputs/latches/ANDs in file order) to the live
// aig.Network node id it was materialized as.
func litToFanin(lit int, id2var []int) (int, bool, error) {
	if lit < 0 {
		return 0, false, fmt.Errorf("aiger: negative literal %d: %w", lit, ErrMalformedInput)
	}
	v := lit >> 1
	if v >= len(id2var) {
		return 0, false, fmt.Errorf("aiger: literal %d references undefined variable %d: %w", lit, v, ErrMalformedInput)
	}
	return id2var[v], lit&1 != 0, nil
}
