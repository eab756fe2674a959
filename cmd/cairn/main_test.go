package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/cairn/internal/dirs"
)

// setupProject creates a project with the given manifest content in a temp
// directory and points the cache and config dirs at fresh temp locations so
// tests never touch the real user directories. It returns the project dir.
func setupProject(t *testing.T, manifestContent string) string {
	t.Helper()
	t.Setenv(dirs.CacheDirEnv, t.TempDir())
	t.Setenv(dirs.ConfigDirEnv, t.TempDir())

	proj := t.TempDir()
	if err := os.WriteFile(filepath.Join(proj, "Cairn.toml"), []byte(manifestContent), 0644); err != nil {
		t.Fatal(err)
	}
	return proj
}

// execute runs the CLI with the given args and returns stdout, stderr and
// the error from Execute.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

const minimalManifest = "[package]\nname = \"demo\"\nversion = \"0.1.0\"\n"
