package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fbkclanna/cairn/internal/dirs"
	"github.com/fbkclanna/cairn/internal/flock"
	"github.com/fbkclanna/cairn/internal/ui"
)

const (
	// ExeEnv names the variable holding the path to the cairn executable.
	// cairn sets it for subprocesses it spawns, so that commands using cairn
	// as a library inherit a correct path even when the current executable
	// is not cairn itself.
	ExeEnv = "CAIRN"

	// LogEnv names the variable carrying the log filter string. It is
	// captured verbatim at construction; interpretation belongs to the
	// logging setup in the CLI layer.
	LogEnv = "CAIRN_LOG"

	// DefaultTargetDirName is the build-output directory created under the
	// project root when no override is given.
	DefaultTargetDirName = "target"

	// PackageCacheLockName is the lock file guarding the package cache.
	// Anything mutating the cache outside a Config, such as cache
	// maintenance commands, must take a lock on the same file.
	PackageCacheLockName  = ".package-cache.lock"
	packageCacheLockLabel = "package cache"
)

// Config is the per-invocation execution context. All fields except the two
// lazy caches and the offline flag are fixed at construction. The offline
// flag is expected to be set only during single-threaded CLI setup, before
// any concurrent use begins.
type Config struct {
	manifestPath string
	dirs         *dirs.AppDirs
	targetDir    *flock.Filesystem
	ui           *ui.Ui
	creationTime time.Time
	logFilter    string
	offline      bool

	appExe           lazyCell[string]
	appExeStrategies []exeStrategy
	packageCacheLock lazyCell[*flock.AdvisoryLock]
}

// Options carries the optional parts of Init.
type Options struct {
	// TargetDirOverride, when non-empty, is used verbatim as the
	// build-output root instead of <root>/target.
	TargetDirOverride string
}

// Init constructs the Config for this invocation. manifestPath must be
// absolute; its parent directory is the project root.
func Init(manifestPath string, d *dirs.AppDirs, u *ui.Ui, opts Options) (*Config, error) {
	creationTime := time.Now()

	if !filepath.IsAbs(manifestPath) {
		return nil, fmt.Errorf("manifest path must be absolute: %s", manifestPath)
	}

	target := opts.TargetDirOverride
	if target == "" {
		target = filepath.Join(parentDir(manifestPath), DefaultTargetDirName)
	}

	c := &Config{
		manifestPath: manifestPath,
		dirs:         d,
		targetDir:    flock.NewOutputFilesystem(target),
		ui:           u,
		creationTime: creationTime,
		logFilter:    os.Getenv(LogEnv),
	}
	c.appExeStrategies = defaultExeStrategies
	return c, nil
}

// ManifestPath returns the absolute path to the project manifest.
func (c *Config) ManifestPath() string {
	return c.manifestPath
}

// Root returns the project root, the parent directory of the manifest.
// The construction contract guarantees the parent exists; its absence is a
// programming error, not a recoverable one.
func (c *Config) Root() string {
	return parentDir(c.manifestPath)
}

func parentDir(manifestPath string) string {
	parent := filepath.Dir(manifestPath)
	if parent == manifestPath {
		panic("parent of manifest path must always exist")
	}
	return parent
}

// Dirs returns the directory layout shared by this invocation.
func (c *Config) Dirs() *dirs.AppDirs {
	return c.dirs
}

// TargetDir returns the build-output root.
func (c *Config) TargetDir() *flock.Filesystem {
	return c.targetDir
}

// Ui returns the user-interface handle.
func (c *Config) Ui() *ui.Ui {
	return c.ui
}

// LogFilter returns the CAIRN_LOG value captured at construction.
func (c *Config) LogFilter() string {
	return c.logFilter
}

// ElapsedTime reports how long this invocation has been running. It is
// monotonic and intended for diagnostics only.
func (c *Config) ElapsedTime() time.Duration {
	return time.Since(c.creationTime)
}

// PackageCacheLock returns the process-wide advisory lock handle over the
// package cache. The handle is constructed on first call and shared by every
// caller afterwards, so at most one lock object exists per process.
// Construction failures are not memoized: a later call constructs anew.
func (c *Config) PackageCacheLock() (*flock.AdvisoryLock, error) {
	return c.packageCacheLock.Get(func() (*flock.AdvisoryLock, error) {
		return c.dirs.CacheDir.AdvisoryLock(PackageCacheLockName, packageCacheLockLabel, c.ui)
	})
}

// Offline states whether offline mode is turned on.
//
// For checking whether cairn may communicate with the network, prefer
// NetworkAllowed, as it might pull information from other sources in the
// future.
func (c *Config) Offline() bool {
	return c.offline
}

// SetOffline turns offline mode on or off. Call only during single-threaded
// setup, before worker goroutines start.
func (c *Config) SetOffline(offline bool) {
	c.offline = offline
}

// NetworkAllowed reports whether cairn may access the network. When false,
// cairn should continue operating if possible without it.
func (c *Config) NetworkAllowed() bool {
	return !c.Offline()
}
