package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// exeStrategy is one way of locating the running cairn executable. Strategies
// are tried in order; the first success wins.
type exeStrategy struct {
	name    string
	resolve func(c *Config) (string, error)
}

var defaultExeStrategies = []exeStrategy{
	{"environment", exeFromEnv},
	{"current executable", exeFromCurrentExe},
	{"argv[0]", exeFromArgv},
}

// AppExe resolves the absolute path to the cairn executable. The first
// successful resolution is cached for the lifetime of the Config; the
// strategies never run again after that, even if the underlying OS state
// changes. If every strategy fails, the returned error retains all of the
// underlying causes and the next call retries from scratch.
func (c *Config) AppExe() (string, error) {
	return c.appExe.Get(func() (string, error) {
		var failures []error
		for _, s := range c.appExeStrategies {
			path, err := s.resolve(c)
			if err == nil {
				return path, nil
			}
			failures = append(failures, fmt.Errorf("%s: %w", s.name, err))
		}
		return "", fmt.Errorf("could not get the path to cairn executable: %w", errors.Join(failures...))
	})
}

// exeFromEnv reuses the path already set in the environment. This lets
// subcommands spawned via `cairn run` (or a wrapper setting $CAIRN) inherit
// a correct path when the current executable is not cairn itself.
func exeFromEnv(*Config) (string, error) {
	v := os.Getenv(ExeEnv)
	if v == "" {
		return "", fmt.Errorf("$%s is not set", ExeEnv)
	}
	return canonicalize(v)
}

// exeFromCurrentExe asks the OS for the running executable. This can fail in
// environments without the needed support, e.g. containers or chroots where
// /proc is not mounted.
func exeFromCurrentExe(*Config) (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return canonicalize(exe)
}

// exeFromArgv resolves argv[0]. A bare name must have come from a PATH
// lookup, so the layout's search path is probed; anything with multiple
// components is a relative or absolute path and canonicalizes directly.
func exeFromArgv(c *Config) (string, error) {
	if len(os.Args) == 0 || os.Args[0] == "" {
		return "", errors.New("no argv[0]")
	}
	return c.resolveArgv0(os.Args[0])
}

func (c *Config) resolveArgv0(argv0 string) (string, error) {
	if !strings.ContainsRune(argv0, os.PathSeparator) {
		return lookPath(argv0, c.dirs.PathEnv)
	}
	return canonicalize(argv0)
}

// lookPath searches a PATH-style string for an executable file named name.
// Relative search entries are resolved against the current working directory.
func lookPath(name, pathEnv string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			dir = "."
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return canonicalize(candidate)
		}
	}
	return "", fmt.Errorf("%s not found in PATH", name)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
}

// canonicalize makes path absolute and resolves symlinks. It fails when the
// path does not exist.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
