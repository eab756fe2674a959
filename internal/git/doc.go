// Package git provides a wrapper around the Git CLI commands cairn needs to
// fetch git dependencies into the package cache. It handles clone, fetch,
// checkout and commit inspection without depending on other internal packages.
package git
