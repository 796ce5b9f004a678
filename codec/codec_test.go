package codec_test

import (
	"testing"

	"github.com/rrrsynth/rrr/aig"
	"github.com/rrrsynth/rrr/codec"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T) *aig.Network {
	t.Helper()
	n := aig.New()
	a := n.AddPi()
	b := n.AddPi()
	c := n.AddPi()
	n1, err := n.AddAnd(aig.NewLit(a, false), aig.NewLit(b, true))
	require.NoError(t, err)
	n2, err := n.AddAnd(aig.NewLit(n1, false), aig.NewLit(c, false))
	require.NoError(t, err)
	n3, err := n.AddAnd(aig.NewLit(a, true), aig.NewLit(b, false), aig.NewLit(c, true))
	require.NoError(t, err)
	_, err = n.AddPo(n2, true)
	require.NoError(t, err)
	_, err = n.AddPo(n3, false)
	require.NoError(t, err)
	return n
}

func assertSameShape(t *testing.T, want, got *aig.Network) {
	t.Helper()
	require.Equal(t, want.NumPis(), got.NumPis())
	require.Equal(t, want.NumPos(), got.NumPos())
	require.Equal(t, want.NumInts(), got.NumInts())

	wantInts, gotInts := want.Ints(), got.Ints()
	require.Equal(t, len(wantInts), len(gotInts))
	for i := range wantInts {
		wid, gid := wantInts[i], gotInts[i]
		require.Equal(t, want.NumFanins(wid), got.NumFanins(gid))
		for idx := 0; idx < want.NumFanins(wid); idx++ {
			require.Equal(t, want.Fanin(wid, idx), got.Fanin(gid, idx))
			require.Equal(t, want.Compl(wid, idx), got.Compl(gid, idx))
		}
	}
	for i := 0; i < want.NumPos(); i++ {
		wfi, wc := want.Fanin(want.Po(i), 0), want.Compl(want.Po(i), 0)
		gfi, gc := got.Fanin(got.Po(i), 0), got.Compl(got.Po(i), 0)
		require.Equal(t, wfi, gfi)
		require.Equal(t, wc, gc)
	}
}

func TestRoundTrip(t *testing.T) {
	n := buildSample(t)
	data := codec.Encode(n)
	back, err := codec.Decode(data)
	require.NoError(t, err)
	assertSameShape(t, n, back)
}

func TestRoundTripEmptyNetwork(t *testing.T) {
	n := aig.New()
	data := codec.Encode(n)
	back, err := codec.Decode(data)
	require.NoError(t, err)
	assertSameShape(t, n, back)
}

func TestRoundTripSinglePoOnPi(t *testing.T) {
	n := aig.New()
	a := n.AddPi()
	_, err := n.AddPo(a, true)
	require.NoError(t, err)
	data := codec.Encode(n)
	back, err := codec.Decode(data)
	require.NoError(t, err)
	assertSameShape(t, n, back)
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	n := buildSample(t)
	data := codec.Encode(n)
	_, err := codec.Decode(data[:len(data)-1])
	require.Error(t, err)
}

func TestDecodeRejectsTrailingGarbage(t *testing.T) {
	n := buildSample(t)
	data := append(codec.Encode(n), 0x00, 0x01)
	_, err := codec.Decode(data)
	require.ErrorIs(t, err, aig.ErrMalformedInput)
}

func TestEncodeIsStableAcrossFaninOrder(t *testing.T) {
	n1 := aig.New()
	a := n1.AddPi()
	b := n1.AddPi()
	and1, err := n1.AddAnd(aig.NewLit(a, false), aig.NewLit(b, true))
	require.NoError(t, err)
	_, err = n1.AddPo(and1, false)
	require.NoError(t, err)

	n2 := aig.New()
	a2 := n2.AddPi()
	b2 := n2.AddPi()
	and2, err := n2.AddAnd(aig.NewLit(b2, true), aig.NewLit(a2, false))
	require.NoError(t, err)
	_, err = n2.AddPo(and2, false)
	require.NoError(t, err)

	require.Equal(t, codec.Encode(n1), codec.Encode(n2))
}
