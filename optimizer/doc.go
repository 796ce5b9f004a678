// Package optimizer drives repeated redundancy removal over an
// aig.Network: sorting each node's fan-ins by a selected policy and
// querying an oracle.Oracle to decide which edges can be dropped
// without changing the network's function.
package optimizer
