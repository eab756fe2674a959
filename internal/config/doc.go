// Package config holds the per-invocation execution context. One Config is
// created per process run and passed by pointer to everything that needs it;
// it anchors the project root, resolves the tool's own executable location,
// and mediates the advisory lock over the shared package cache.
package config
