package aig

import (
	"container/list"
	"fmt"
)

// clone returns a deep copy of the graph state: nodes, fanins,
// refcounts, and PI/PO lists. The topological order is not copied: the
// returned network's internals list, position map and isInternal set
// are empty, and the caller (Save, Load) refills them. Traversal epoch,
// mutation callbacks, and the snapshot stack itself are intentionally
// not copied — a restored network starts with fresh traversal state and
// keeps whichever callbacks are already subscribed to it.
func (n *Network) clone() *Network {
	c := &Network{
		nodes:       make([]node, len(n.nodes)),
		pis:         append([]int(nil), n.pis...),
		pos:         append([]int(nil), n.pos...),
		internals:   list.New(),
		internalPos: make(map[int]*list.Element, n.internals.Len()),
		isInternal:  make(map[int]bool, len(n.isInternal)),
		stamp:       make([]uint64, len(n.nodes)),
	}
	for i, nd := range n.nodes {
		c.nodes[i] = node{kind: nd.kind, fanins: append([]Lit(nil), nd.fanins...), refs: nd.refs}
	}
	return c
}

// Save pushes a deep copy of the current graph state onto the snapshot
// stack and returns the slot it occupies. Pass AutoSlot to always
// append a new slot; pass a non-negative slot to overwrite an existing
// one.
func (n *Network) Save(slot int) int {
	snap := n.clone()
	for e := n.internals.Front(); e != nil; e = e.Next() {
		id := e.Value.(int)
		ne := snap.internals.PushBack(id)
		snap.internalPos[id] = ne
		snap.isInternal[id] = true
	}
	if slot < 0 {
		slot = len(n.backups)
		n.backups = append(n.backups, snap)
	} else {
		for len(n.backups) <= slot {
			n.backups = append(n.backups, nil)
		}
		n.backups[slot] = snap
	}
	n.dispatch(Action{Type: ActionSave, ID: slot})
	return slot
}

// Load restores the graph state saved at slot, leaving the snapshot
// stack itself untouched (the slot can be loaded again later).
func (n *Network) Load(slot int) error {
	if slot < 0 || slot >= len(n.backups) || n.backups[slot] == nil {
		return fmt.Errorf("aig: Load(%d): %w", slot, ErrUnknownSlot)
	}
	restored := n.backups[slot].clone()
	for e := n.backups[slot].internals.Front(); e != nil; e = e.Next() {
		id := e.Value.(int)
		ne := restored.internals.PushBack(id)
		restored.internalPos[id] = ne
		restored.isInternal[id] = true
	}
	n.nodes = restored.nodes
	n.pis = restored.pis
	n.pos = restored.pos
	n.internals = restored.internals
	n.internalPos = restored.internalPos
	n.isInternal = restored.isInternal
	n.stamp = make([]uint64, len(n.nodes))
	n.epoch = 0
	n.dispatch(Action{Type: ActionLoad, ID: slot})
	return nil
}

// PopBack discards the most recently pushed snapshot.
func (n *Network) PopBack() error {
	if len(n.backups) == 0 {
		return fmt.Errorf("aig: PopBack: %w", ErrUnknownSlot)
	}
	slot := len(n.backups) - 1
	n.backups = n.backups[:slot]
	n.dispatch(Action{Type: ActionPopBack, ID: slot})
	return nil
}
