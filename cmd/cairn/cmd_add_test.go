package main

import (
	"path/filepath"
	"testing"

	"github.com/fbkclanna/cairn/internal/manifest"
)

func TestRunAdd_pathDependency(t *testing.T) {
	proj := setupProject(t, minimalManifest)
	mp := filepath.Join(proj, manifest.Filename)

	_, _, err := execute(t, "--manifest-path", mp, "add", "mylib", "--path", "../mylib")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	m, err := manifest.Load(mp)
	if err != nil {
		t.Fatal(err)
	}
	dep, ok := m.Dependencies["mylib"]
	if !ok {
		t.Fatal("dependency not written to manifest")
	}
	if dep.Path != "../mylib" {
		t.Errorf("path = %q, want %q", dep.Path, "../mylib")
	}
}

func TestRunAdd_duplicate(t *testing.T) {
	proj := setupProject(t, minimalManifest)
	mp := filepath.Join(proj, manifest.Filename)

	if _, _, err := execute(t, "--manifest-path", mp, "add", "mylib", "--path", "../mylib"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "--manifest-path", mp, "add", "mylib", "--path", "../other"); err == nil {
		t.Fatal("expected error for duplicate dependency")
	}
}

func TestRunAdd_conflictingSources(t *testing.T) {
	proj := setupProject(t, minimalManifest)
	mp := filepath.Join(proj, manifest.Filename)

	_, _, err := execute(t, "--manifest-path", mp, "add", "mylib",
		"--path", "../mylib", "--git", "https://example.com/mylib.git")
	if err == nil {
		t.Fatal("expected error when both --path and --git are given")
	}

	// The invalid manifest must not have been written.
	m, loadErr := manifest.Load(mp)
	if loadErr != nil {
		t.Fatal(loadErr)
	}
	if len(m.Dependencies) != 0 {
		t.Errorf("manifest should be unchanged, got deps: %+v", m.Dependencies)
	}
}
