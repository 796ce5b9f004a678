// Package canon computes a canonical form of an aig.Network by
// iterative colour refinement (a Weisfeiler-Lehman style fixed point
// over simulated node signatures), then rebuilds a fresh network whose
// node ids and fanin ordering depend only on the canonical colouring
// rather than on construction history.
//
// Two structurally isomorphic networks, built through entirely
// different sequences of mutation, canonicalize to byte-identical
// encodings under the codec package. This is what lets the dedup table
// recognize that two independently rewritten nodes are the same graph.
package canon
