package aig

import "container/list"

// bumpEpoch advances the traversal epoch, resetting the per-node stamp
// array only on the rare wraparound. Traversal helpers stamp a node with
// the current epoch to mean "visited"; comparing against n.epoch avoids
// clearing the array between unrelated traversals.
func (n *Network) bumpEpoch() {
	n.epoch++
	if n.epoch == 0 {
		for i := range n.stamp {
			n.stamp[i] = 0
		}
		n.epoch++
	}
}

// dependsOn reports whether node's transitive fanin cone includes
// target. It is used by AddFanin to detect that adding an edge would
// close a cycle rather than merely require a topological re-sort.
func (n *Network) dependsOn(node, target int) bool {
	n.bumpEpoch()
	ep := n.epoch
	var visit func(int) bool
	visit = func(cur int) bool {
		if cur == target {
			return true
		}
		if n.stamp[cur] == ep {
			return false
		}
		n.stamp[cur] = ep
		for _, f := range n.nodes[cur].fanins {
			if visit(f.Node()) {
				return true
			}
		}
		return false
	}
	return visit(node)
}

// ForEachTfo calls fn once for every node in the transitive fanout cone
// of id (not including id itself), in topological order. If includePO
// is true, primary outputs reachable from id are included as well.
func (n *Network) ForEachTfo(id int, includePO bool, fn func(id int)) {
	if n.nodes[id].refs == 0 {
		return
	}
	n.bumpEpoch()
	ep := n.epoch
	n.stamp[id] = ep
	for e := n.faninScanStart(id); e != nil; e = e.Next() {
		cur := e.Value.(int)
		if n.anyFaninStamped(cur, ep) {
			n.stamp[cur] = ep
			fn(cur)
		}
	}
	if includePO {
		for _, po := range n.pos {
			fi := n.nodes[po].fanins[0].Node()
			if n.stamp[fi] == ep {
				n.stamp[po] = ep
				fn(po)
			}
		}
	}
}

// ForEachTfoReverse calls fn once for every node in the transitive
// fanout cone of id, in reverse topological order, with primary outputs
// (if includePO) emitted first in forward creation order, matching the
// order a consumer sweeping outputs before internals would want.
func (n *Network) ForEachTfoReverse(id int, includePO bool, fn func(id int)) {
	if n.nodes[id].refs == 0 {
		return
	}
	n.bumpEpoch()
	ep := n.epoch
	n.stamp[id] = ep
	var marked []*list.Element
	for e := n.faninScanStart(id); e != nil; e = e.Next() {
		cur := e.Value.(int)
		if n.anyFaninStamped(cur, ep) {
			n.stamp[cur] = ep
			marked = append(marked, e)
		}
	}
	if includePO {
		for _, po := range n.pos {
			fi := n.nodes[po].fanins[0].Node()
			if n.stamp[fi] == ep {
				fn(po)
			}
		}
	}
	for i := len(marked) - 1; i >= 0; i-- {
		fn(marked[i].Value.(int))
	}
}

func (n *Network) anyFaninStamped(id int, ep uint64) bool {
	for _, f := range n.nodes[id].fanins {
		if n.stamp[f.Node()] == ep {
			return true
		}
	}
	return false
}
