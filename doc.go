// Package rrr hosts an and-inverter-graph redundancy-removal rewriting
// engine: a concurrent scheduler drives many local optimization
// workers over a pool of canonicalized candidates, each worker
// consulting a SAT-style oracle to decide which fan-ins are provably
// redundant and safe to delete.
//
// Subpackages:
//
//	aig/       — the and-inverter-graph data structure and its mutations
//	aiger/     — ASCII and binary AIGER file I/O
//	backend/   — the external rewriting-command boundary
//	canon/     — structural canonicalization for deduplication
//	codec/     — compact intra-process network serialization
//	config/    — runtime knobs (seed, timeout, threads, ...)
//	dedup/     — the tiered deduplicating table the scheduler pools into
//	optimizer/ — one worker's local redundancy-removal pass
//	oracle/    — the fanin-redundancy decision interface
//	scheduler/ — the concurrent job scheduler tying the above together
//	cmd/rrr/   — the command-line entry point
package rrr
