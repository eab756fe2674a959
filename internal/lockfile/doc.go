// Package lockfile handles parsing and writing of Cairn.lock files.
// Lock files record the exact source and commit resolved for each
// dependency, enabling reproducible builds.
package lockfile
