package canon_test

import (
	"testing"

	"github.com/rrrsynth/rrr/aig"
	"github.com/rrrsynth/rrr/canon"
	"github.com/rrrsynth/rrr/codec"
	"github.com/stretchr/testify/require"
)

// buildAdderSlice builds a two-bit full-adder-ish network with enough
// internal structure (shared fanins, varying arity) to exercise
// refinement beyond the trivial first pass.
func buildAdderSlice(t *testing.T) *aig.Network {
	t.Helper()
	n := aig.New()
	a := n.AddPi()
	b := n.AddPi()
	c := n.AddPi()

	ab, err := n.AddAnd(aig.NewLit(a, false), aig.NewLit(b, false))
	require.NoError(t, err)
	nab, err := n.AddAnd(aig.NewLit(a, true), aig.NewLit(b, true))
	require.NoError(t, err)
	xorAB, err := n.AddAnd(aig.NewLit(ab, true), aig.NewLit(nab, true))
	require.NoError(t, err)

	xc, err := n.AddAnd(aig.NewLit(xorAB, false), aig.NewLit(c, false))
	require.NoError(t, err)
	nxc, err := n.AddAnd(aig.NewLit(xorAB, true), aig.NewLit(c, true))
	require.NoError(t, err)
	sum, err := n.AddAnd(aig.NewLit(xc, true), aig.NewLit(nxc, true))
	require.NoError(t, err)

	carry, err := n.AddAnd(aig.NewLit(ab, true), aig.NewLit(xc, true), aig.NewLit(nxc, false))
	require.NoError(t, err)

	_, err = n.AddPo(sum, true)
	require.NoError(t, err)
	_, err = n.AddPo(carry, true)
	require.NoError(t, err)
	return n
}

func TestCanonicalizeIsIdempotentOnItsOwnOutput(t *testing.T) {
	n := buildAdderSlice(t)
	once := canon.Canonicalize(n)
	twice := canon.Canonicalize(once)
	require.Equal(t, codec.Encode(once), codec.Encode(twice))
}

func TestCanonicalizeIsStableAcrossFaninStorageOrder(t *testing.T) {
	a := buildAdderSlice(t)

	// Rebuild the same logical network with every AND's fanin list
	// reversed in storage order; structurally isomorphic, differently
	// ordered.
	b := aig.New()
	pa := b.AddPi()
	pb := b.AddPi()
	pc := b.AddPi()
	ab, err := b.AddAnd(aig.NewLit(pb, false), aig.NewLit(pa, false))
	require.NoError(t, err)
	nab, err := b.AddAnd(aig.NewLit(pb, true), aig.NewLit(pa, true))
	require.NoError(t, err)
	xorAB, err := b.AddAnd(aig.NewLit(nab, true), aig.NewLit(ab, true))
	require.NoError(t, err)
	xc, err := b.AddAnd(aig.NewLit(pc, false), aig.NewLit(xorAB, false))
	require.NoError(t, err)
	nxc, err := b.AddAnd(aig.NewLit(pc, true), aig.NewLit(xorAB, true))
	require.NoError(t, err)
	sum, err := b.AddAnd(aig.NewLit(nxc, true), aig.NewLit(xc, true))
	require.NoError(t, err)
	carry, err := b.AddAnd(aig.NewLit(nxc, false), aig.NewLit(xc, true), aig.NewLit(ab, true))
	require.NoError(t, err)
	_, err = b.AddPo(sum, true)
	require.NoError(t, err)
	_, err = b.AddPo(carry, true)
	require.NoError(t, err)

	require.Equal(t, codec.Encode(canon.Canonicalize(a)), codec.Encode(canon.Canonicalize(b)))
}

func TestCanonicalizeEmptyPiNetworkReturnsFreshNetwork(t *testing.T) {
	n := aig.New()
	out := canon.Canonicalize(n)
	require.NotSame(t, n, out)
	require.Equal(t, n, out)
}

func TestCanonicalizePreservesArity(t *testing.T) {
	n := buildAdderSlice(t)
	out := canon.Canonicalize(n)
	require.Equal(t, n.NumPis(), out.NumPis())
	require.Equal(t, n.NumPos(), out.NumPos())
	require.Equal(t, n.NumInts(), out.NumInts())
}
