// Package aig implements the And-Inverter-Graph network used throughout
// rrr: a DAG of constant, primary-input, two-or-more-fanin AND, and
// primary-output nodes connected by complementable edges.
//
// A Network maintains its internal (AND) nodes in a topologically valid
// order at all times, recovers fan-out relationships by scanning forward
// through that order rather than storing a reverse adjacency list, and
// exposes a traversal epoch so repeated graph walks need not clear a
// "visited" array between runs. Every edit of existing structure
// (fanin changes, node removal, collapse/decompose, fanin sorting, and
// snapshot Save/Load/PopBack) dispatches an Action to subscribed
// callbacks so that derived state (a redundancy oracle's cache, an
// analyzer's partial results) can be invalidated precisely instead of
// rebuilt from scratch. Creating nodes with AddPi, AddAnd or AddPo
// dispatches no Action.
package aig
