// Package oracle decides whether a fanin edge of an AIG node is
// redundant, i.e. whether the node's function is unchanged with that
// edge removed. It is the Go-native stand-in for an external SAT
// solver or simulator: optimizer never calls a solver directly, it
// only calls Oracle.CheckRedundancy.
//
// Threshold generalizes the monotone accept/reject bookkeeping shared
// by any scoring scheme (ascending: accept scores at or below a
// threshold; descending: accept at or above); SimOracle is the
// reference scorer, built on direct Boolean simulation rather than a
// solver.
package oracle
