// Package codec implements the binary on-disk encoding of an
// aig.Network: a varint header (PI count, PO count, internal count)
// followed by each internal node's fanins as reverse-order delta
// varints against the node's own id, followed by one literal per
// primary output.
//
// Encode always sorts each internal node's fanins ascending by their
// dense encoded id before serializing; the delta scheme requires fanins
// to be visited in descending encoded-id order so every delta is
// non-negative, and a
// freshly built or freshly mutated Network has no such guarantee on
// its own.
package codec
