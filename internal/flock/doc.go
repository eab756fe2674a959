// Package flock provides lazily-created directory roots and cross-process
// advisory file locks over them. Locks are cooperative: they are honored only
// by processes that explicitly acquire them.
package flock
