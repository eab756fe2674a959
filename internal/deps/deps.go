// Package deps resolves manifest dependencies into concrete, locally
// available units, fetching git sources into the shared package cache.
package deps

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fbkclanna/cairn/internal/config"
	"github.com/fbkclanna/cairn/internal/git"
	"github.com/fbkclanna/cairn/internal/lockfile"
	"github.com/fbkclanna/cairn/internal/manifest"
	"github.com/fbkclanna/cairn/internal/ui"
)

// Unit is one resolved dependency: where it lives on disk and what exactly
// was selected.
type Unit struct {
	Name    string
	Version string
	Source  string
	Commit  string
	Dir     string
}

// Resolver fetches and resolves dependencies. All package-cache mutation
// happens under the process-wide advisory lock.
type Resolver struct {
	cfg    *config.Config
	jobs   int
	locked bool
}

// NewResolver creates a resolver running at most jobs fetches in parallel.
// When locked is true, git dependencies are pinned to the commits recorded
// in the lock file instead of their manifest refs.
func NewResolver(cfg *config.Config, jobs int, locked bool) *Resolver {
	if jobs < 1 {
		jobs = 1
	}
	return &Resolver{cfg: cfg, jobs: jobs, locked: locked}
}

// Resolve produces one Unit per manifest dependency, ordered by name.
func (r *Resolver) Resolve(m *manifest.Manifest, lf *lockfile.File) ([]Unit, error) {
	if len(m.Dependencies) == 0 {
		return nil, nil
	}

	cacheLock, err := r.cfg.PackageCacheLock()
	if err != nil {
		return nil, err
	}
	guard, err := cacheLock.Acquire()
	if err != nil {
		return nil, err
	}
	defer guard.Release()

	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	progress := ui.NewProgress(r.cfg.Ui(), len(names))
	units := make([]Unit, len(names))
	errCh := make(chan error, len(names))
	sem := make(chan struct{}, r.jobs)
	var wg sync.WaitGroup

	for i, name := range names {
		wg.Add(1)
		go func(i int, name string, dep manifest.Dependency) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			unit, err := r.resolveOne(name, dep, lf, progress)
			if err != nil {
				errCh <- fmt.Errorf("dependency %s: %w", name, err)
				return
			}
			units[i] = unit
			progress.Done(fmt.Sprintf("%s %s", unit.Name, unit.Version))
		}(i, name, m.Dependencies[name])
	}

	wg.Wait()
	close(errCh)

	for e := range errCh {
		return nil, e
	}
	return units, nil
}

func (r *Resolver) resolveOne(name string, dep manifest.Dependency, lf *lockfile.File, progress *ui.Progress) (Unit, error) {
	if dep.IsPath() {
		return r.resolvePath(name, dep)
	}
	return r.resolveGit(name, dep, lf, progress)
}

func (r *Resolver) resolvePath(name string, dep manifest.Dependency) (Unit, error) {
	dir := filepath.Clean(filepath.Join(r.cfg.Root(), dep.Path))
	depManifest := filepath.Join(dir, manifest.Filename)
	if _, err := os.Stat(depManifest); err != nil {
		return Unit{}, fmt.Errorf("path source %s has no %s: %w", dir, manifest.Filename, err)
	}
	m, err := manifest.Load(depManifest)
	if err != nil {
		return Unit{}, err
	}
	return Unit{
		Name:    name,
		Version: m.Package.Version,
		Source:  dep.Source(),
		Dir:     dir,
	}, nil
}

// CacheCheckoutDir returns the package-cache slot where a git dependency is
// checked out. The slot name includes a source hash so same-named
// dependencies from different repositories do not collide.
func CacheCheckoutDir(cfg *config.Config, name string, dep manifest.Dependency) string {
	registry := cfg.Dirs().CacheDir.Child("registry").Child("git")
	return filepath.Join(registry.Root(), fmt.Sprintf("%s-%s", name, sourceID(dep.Git)))
}

func (r *Resolver) resolveGit(name string, dep manifest.Dependency, lf *lockfile.File, progress *ui.Progress) (Unit, error) {
	if _, err := r.cfg.Dirs().CacheDir.Child("registry").Child("git").Path(); err != nil {
		return Unit{}, err
	}
	dir := CacheCheckoutDir(r.cfg, name, dep)

	switch {
	case !git.IsCloned(dir):
		if !r.cfg.NetworkAllowed() {
			return Unit{}, fmt.Errorf("network access is disabled by offline mode; cannot clone %s", dep.Git)
		}
		progress.Log("cloning %s", dep.Git)
		if err := git.Clone(dep.Git, dir); err != nil {
			return Unit{}, err
		}
	case r.cfg.NetworkAllowed():
		progress.Log("fetching %s", dep.Git)
		if err := git.Fetch(dir); err != nil {
			return Unit{}, err
		}
	default:
		// Offline with a cached checkout: use it as-is.
	}

	ref := dep.GitRef()
	if r.locked && lf != nil {
		if pin, ok := lf.Get(name); ok && pin.Commit != "" {
			ref = pin.Commit
		}
	}
	if ref != "" {
		if err := git.Checkout(dir, ref); err != nil {
			return Unit{}, err
		}
	}

	commit, err := git.HeadCommit(dir)
	if err != nil {
		return Unit{}, err
	}

	// Version is informational for git sources; read it when the dependency
	// ships a manifest of its own.
	version := ""
	if m, err := manifest.Load(filepath.Join(dir, manifest.Filename)); err == nil {
		version = m.Package.Version
	}

	return Unit{
		Name:    name,
		Version: version,
		Source:  dep.Source(),
		Commit:  commit,
		Dir:     dir,
	}, nil
}

// sourceID derives a short stable identifier for a source URL, keeping cache
// checkouts of same-named dependencies from different sources apart.
func sourceID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:8]
}

// Lockfile assembles a lock file from resolved units.
func Lockfile(units []Unit, toolVersion string) *lockfile.File {
	lf := &lockfile.File{
		Version:     1,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ToolVersion: toolVersion,
	}
	for _, u := range units {
		lf.Packages = append(lf.Packages, lockfile.Package{
			Name:    u.Name,
			Version: u.Version,
			Source:  u.Source,
			Commit:  u.Commit,
		})
	}
	return lf
}
