package main

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/cairn/internal/lockfile"
	"github.com/fbkclanna/cairn/internal/manifest"
	"github.com/fbkclanna/cairn/internal/testutil"
)

func TestRunFetch_pathDependency(t *testing.T) {
	proj := setupProject(t, minimalManifest)
	testutil.CreateDepProject(t, proj, "mylib", "0.3.0")
	mp := filepath.Join(proj, manifest.Filename)

	if _, _, err := execute(t, "--manifest-path", mp, "add", "mylib", "--path", "mylib"); err != nil {
		t.Fatal(err)
	}
	_, errOut, err := execute(t, "--manifest-path", mp, "fetch")
	if err != nil {
		t.Fatalf("fetch failed: %v\n%s", err, errOut)
	}

	lf, err := lockfile.Load(filepath.Join(proj, lockfile.Filename))
	if err != nil {
		t.Fatalf("lock file not written: %v", err)
	}
	pin, ok := lf.Get("mylib")
	if !ok {
		t.Fatal("mylib missing from lock file")
	}
	if pin.Version != "0.3.0" {
		t.Errorf("version = %q, want %q", pin.Version, "0.3.0")
	}
}

func TestRunFetch_lockedWithoutLockFile(t *testing.T) {
	proj := setupProject(t, minimalManifest)
	mp := filepath.Join(proj, manifest.Filename)

	_, _, err := execute(t, "--manifest-path", mp, "fetch", "--locked")
	if err == nil {
		t.Fatal("expected error for --locked without a lock file")
	}
}

func TestRunFetch_badJobs(t *testing.T) {
	proj := setupProject(t, minimalManifest)
	mp := filepath.Join(proj, manifest.Filename)

	_, _, err := execute(t, "--manifest-path", mp, "fetch", "--jobs=-2")
	if err == nil {
		t.Fatal("expected error for --jobs < 1")
	}
}

func TestRunFetch_missingPathDependency(t *testing.T) {
	proj := setupProject(t, fmt.Sprintf("%s\n[dependencies]\nghost = { path = \"ghost\" }\n", minimalManifest))
	mp := filepath.Join(proj, manifest.Filename)

	_, _, err := execute(t, "--manifest-path", mp, "fetch")
	if err == nil {
		t.Fatal("expected error for missing path dependency")
	}
}
