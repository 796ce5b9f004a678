package aig_test

import (
	"errors"
	"testing"

	"github.com/rrrsynth/rrr/aig"
	"github.com/stretchr/testify/require"
)

// buildXor2 returns a network computing (a xor b) on two PIs, expressed
// with the usual three-AND xor decomposition, driving a single PO.
func buildXor2(t *testing.T) (*aig.Network, int, int, int) {
	t.Helper()
	n := aig.New()
	a := n.AddPi()
	b := n.AddPi()
	n1, err := n.AddAnd(aig.NewLit(a, false), aig.NewLit(b, true))
	require.NoError(t, err)
	n2, err := n.AddAnd(aig.NewLit(a, true), aig.NewLit(b, false))
	require.NoError(t, err)
	n3, err := n.AddAnd(aig.NewLit(n1, true), aig.NewLit(n2, true))
	require.NoError(t, err)
	_, err = n.AddPo(n3, true)
	require.NoError(t, err)
	return n, a, b, n3
}

func TestNewHasOnlyConst0(t *testing.T) {
	n := aig.New()
	require.Equal(t, 1, n.NumNodes())
	require.Equal(t, 0, n.NumPis())
	require.Equal(t, 0, n.NumInts())
	require.Equal(t, 0, n.NumPos())
	require.Equal(t, aig.KindConst0, n.Kind(aig.Const0))
}

func TestAddPiAddAndAddPo(t *testing.T) {
	n, a, b, n3 := buildXor2(t)
	require.Equal(t, 2, n.NumPis())
	require.Equal(t, 3, n.NumInts())
	require.Equal(t, 1, n.NumPos())
	require.True(t, n.IsPi(a))
	require.True(t, n.IsPi(b))
	require.True(t, n.IsInt(n3))
	require.True(t, n.IsPoDriver(n3))

	order := n.Ints()
	require.Len(t, order, 3)
	// every fanin must precede its consumer in topological order.
	pos := make(map[int]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, id := range order {
		n.ForEachFanin(id, func(fi int, _ bool) {
			if n.IsInt(fi) {
				require.Less(t, pos[fi], pos[id])
			}
		})
	}
}

func TestAddAndRejectsFewerThanTwoFanins(t *testing.T) {
	n := aig.New()
	a := n.AddPi()
	_, err := n.AddAnd(aig.NewLit(a, false))
	require.ErrorIs(t, err, aig.ErrInvariantViolation)
}

func TestAddAndRejectsDuplicateFanin(t *testing.T) {
	n := aig.New()
	a := n.AddPi()
	_, err := n.AddAnd(aig.NewLit(a, false), aig.NewLit(a, true))
	require.ErrorIs(t, err, aig.ErrDuplicateFanin)
}

func TestAddAndRejectsLiteralConstantOne(t *testing.T) {
	n := aig.New()
	a := n.AddPi()
	_, err := n.AddAnd(aig.NewLit(a, false), aig.NewLit(aig.Const0, true))
	require.True(t, errors.Is(err, aig.ErrConstOneFanin))
}

func TestAddAndRejectsUnknownFanin(t *testing.T) {
	n := aig.New()
	a := n.AddPi()
	_, err := n.AddAnd(aig.NewLit(a, false), aig.NewLit(999, false))
	require.ErrorIs(t, err, aig.ErrInvariantViolation)
}

func TestFindFaninAndAccessors(t *testing.T) {
	n, a, b, n3 := buildXor2(t)
	require.Equal(t, 2, n.NumFanins(n3))
	idx := n.FindFanin(n3, n3-1)
	require.Equal(t, 1, idx)
	require.Equal(t, -1, n.FindFanin(n3, a))
	require.Equal(t, -1, n.FindFanin(n3, b))
}

func TestForEachFanout(t *testing.T) {
	n := aig.New()
	a := n.AddPi()
	b := n.AddPi()
	c := n.AddPi()
	and1, err := n.AddAnd(aig.NewLit(a, false), aig.NewLit(b, false))
	require.NoError(t, err)
	and2, err := n.AddAnd(aig.NewLit(and1, false), aig.NewLit(c, false))
	require.NoError(t, err)
	_, err = n.AddPo(and1, false)
	require.NoError(t, err)

	var fanouts []int
	n.ForEachFanout(and1, func(fo int, _ bool) { fanouts = append(fanouts, fo) })
	require.Len(t, fanouts, 2)
	require.Contains(t, fanouts, and2)
}
