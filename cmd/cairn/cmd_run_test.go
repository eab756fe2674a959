package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/cairn/internal/manifest"
)

func TestRunRun_executesScript(t *testing.T) {
	content := minimalManifest + "\n[scripts]\ncheck = [\"sh\", \"-c\", \"printf %s \\\"$CAIRN\\\" > cairn-exe.txt\"]\n"
	proj := setupProject(t, content)
	mp := filepath.Join(proj, manifest.Filename)

	_, errOut, err := execute(t, "--manifest-path", mp, "run", "check")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, errOut)
	}

	// The script runs in the project root with CAIRN set to the invoking
	// binary, which for tests is the test executable.
	data, err := os.ReadFile(filepath.Join(proj, "cairn-exe.txt"))
	if err != nil {
		t.Fatalf("script did not run in project root: %v", err)
	}
	if len(data) == 0 {
		t.Error("CAIRN was not exported to the script environment")
	}
}

func TestRunRun_unknownScript(t *testing.T) {
	proj := setupProject(t, minimalManifest)
	mp := filepath.Join(proj, manifest.Filename)

	_, _, err := execute(t, "--manifest-path", mp, "run", "nope")
	if err == nil {
		t.Fatal("expected error for unknown script")
	}
}

func TestRunRun_extraArgs(t *testing.T) {
	content := minimalManifest + "\n[scripts]\nsave = [\"cp\"]\n"
	proj := setupProject(t, content)
	mp := filepath.Join(proj, manifest.Filename)

	src := filepath.Join(proj, "a.txt")
	if err := os.WriteFile(src, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, "--manifest-path", mp, "run", "save", "a.txt", "b.txt")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(proj, "b.txt")); err != nil {
		t.Errorf("extra args were not appended to the script argv: %v", err)
	}
}

func TestRunRun_scriptFailurePropagates(t *testing.T) {
	content := fmt.Sprintf("%s\n[scripts]\nfail = [\"sh\", \"-c\", \"exit 3\"]\n", minimalManifest)
	proj := setupProject(t, content)
	mp := filepath.Join(proj, manifest.Filename)

	_, _, err := execute(t, "--manifest-path", mp, "run", "fail")
	if err == nil {
		t.Fatal("expected script exit status to propagate")
	}
}
