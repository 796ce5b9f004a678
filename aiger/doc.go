// Package aiger reads and writes the AIGER file format (both the
// ASCII "aag" and binary "aig" variants) used to exchange
// and-inverter graphs with other tools. Latches are lowered into a
// primary input carrying the latch's current-state value and a
// primary output carrying its next-state function, since aig.Network
// has no latch node kind of its own; callers get the latch count back
// so they can tell which trailing inputs and leading outputs are
// latch-induced.
package aiger
