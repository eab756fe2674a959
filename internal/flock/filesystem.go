package flock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fbkclanna/cairn/internal/ui"
)

// cachedirTag marks output directories so backup tools can skip them.
// See https://bford.info/cachedir/ for the format.
const cachedirTag = `Signature: 8a477f597d28d172789f06886806bc55
# This file is a cache directory tag created by cairn.
# For information about cache directory tags, see https://bford.info/cachedir/
`

type createKind int

const (
	kindDirectory createKind = iota
	kindOutputDir
)

// Filesystem is a directory root that is created on first use. Output roots
// additionally receive a CACHEDIR.TAG file when created.
type Filesystem struct {
	root string
	kind createKind

	mu      sync.Mutex
	created bool
}

// NewFilesystem returns a plain lazily-created directory root.
func NewFilesystem(root string) *Filesystem {
	return &Filesystem{root: root, kind: kindDirectory}
}

// NewOutputFilesystem returns a build-output root. The directory is tagged
// with CACHEDIR.TAG when it is first created.
func NewOutputFilesystem(root string) *Filesystem {
	return &Filesystem{root: root, kind: kindOutputDir}
}

// Root returns the configured path without creating anything on disk.
func (fs *Filesystem) Root() string {
	return fs.root
}

// Path ensures the directory exists and returns its path.
func (fs *Filesystem) Path() (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.created {
		return fs.root, nil
	}
	if err := os.MkdirAll(fs.root, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", fs.root, err)
	}
	if fs.kind == kindOutputDir {
		tag := filepath.Join(fs.root, "CACHEDIR.TAG")
		if _, err := os.Stat(tag); os.IsNotExist(err) {
			if err := os.WriteFile(tag, []byte(cachedirTag), 0644); err != nil {
				return "", fmt.Errorf("writing %s: %w", tag, err)
			}
		}
	}
	fs.created = true
	return fs.root, nil
}

// Child returns a lazily-created subdirectory of this root.
func (fs *Filesystem) Child(name string) *Filesystem {
	return NewFilesystem(filepath.Join(fs.root, name))
}

// AdvisoryLock constructs a cross-process lock handle over the file name
// inside this root. The root is created if needed, which is the only way
// construction can fail.
func (fs *Filesystem) AdvisoryLock(name, label string, u *ui.Ui) (*AdvisoryLock, error) {
	dir, err := fs.Path()
	if err != nil {
		return nil, fmt.Errorf("creating %s lock: %w", label, err)
	}
	return newAdvisoryLock(filepath.Join(dir, name), label, u), nil
}
