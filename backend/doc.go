// Package backend models the opaque external rewriting process a
// worker may hand a serialized network to: an oracle that accepts one
// of a fixed set of command strings and returns a Boolean-equivalent
// network, with no further assumptions about how it got there.
package backend
