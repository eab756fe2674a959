package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/cairn/internal/dirs"
)

func TestRunCachePath(t *testing.T) {
	cache := t.TempDir()
	t.Setenv(dirs.CacheDirEnv, cache)

	out, _, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path failed: %v", err)
	}
	if strings.TrimSpace(out) != cache {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), cache)
	}
}

func TestRunCacheClean(t *testing.T) {
	cache := t.TempDir()
	t.Setenv(dirs.CacheDirEnv, cache)

	checkout := filepath.Join(cache, "registry", "git", "mylib-abc12345")
	if err := os.MkdirAll(checkout, 0755); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, "cache", "clean"); err != nil {
		t.Fatalf("cache clean failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cache, "registry")); !os.IsNotExist(err) {
		t.Errorf("registry should be gone, stat err = %v", err)
	}
}
