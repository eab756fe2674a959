// Package dirs computes the per-user directory layout: where the shared
// package cache and the configuration files live.
package dirs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/fbkclanna/cairn/internal/flock"
)

// Environment overrides for the default XDG-derived locations.
const (
	CacheDirEnv  = "CAIRN_CACHE"
	ConfigDirEnv = "CAIRN_CONFIG"
)

// AppDirs maps logical directory roles to filesystem locations. It is shared
// by reference between the Config and resources derived from it.
type AppDirs struct {
	// CacheDir is the package cache root, shared by all projects of the
	// current user.
	CacheDir *flock.Filesystem
	// ConfigDir holds per-user configuration files.
	ConfigDir string
	// PathEnv is the PATH-style search string captured at startup, used for
	// argv[0] executable resolution.
	PathEnv string
}

// New computes the directory layout from the XDG base directories, honoring
// the CAIRN_CACHE and CAIRN_CONFIG environment overrides.
func New() (*AppDirs, error) {
	cache, err := dirFromEnv(CacheDirEnv, filepath.Join(xdg.CacheHome, "cairn"))
	if err != nil {
		return nil, err
	}
	config, err := dirFromEnv(ConfigDirEnv, filepath.Join(xdg.ConfigHome, "cairn"))
	if err != nil {
		return nil, err
	}
	return &AppDirs{
		CacheDir:  flock.NewFilesystem(cache),
		ConfigDir: config,
		PathEnv:   os.Getenv("PATH"),
	}, nil
}

func dirFromEnv(env, fallback string) (string, error) {
	v := os.Getenv(env)
	if v == "" {
		return fallback, nil
	}
	abs, err := filepath.Abs(v)
	if err != nil {
		return "", fmt.Errorf("resolving $%s: %w", env, err)
	}
	return abs, nil
}

// String renders the layout one location per line, for diagnostics.
func (d *AppDirs) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "cache dir:  %s\n", d.CacheDir.Root())
	fmt.Fprintf(&b, "config dir: %s\n", d.ConfigDir)
	return b.String()
}
