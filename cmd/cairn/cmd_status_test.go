package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/cairn/internal/manifest"
	"github.com/fbkclanna/cairn/internal/testutil"
)

func TestRunStatus_pathDependencies(t *testing.T) {
	proj := setupProject(t, minimalManifest)
	testutil.CreateDepProject(t, proj, "present-lib", "0.1.0")
	mp := filepath.Join(proj, manifest.Filename)

	for name, path := range map[string]string{
		"present-lib": "present-lib",
		"missing-lib": "missing-lib",
	} {
		if _, _, err := execute(t, "--manifest-path", mp, "add", name, "--path", path); err != nil {
			t.Fatal(err)
		}
	}

	out, _, err := execute(t, "--manifest-path", mp, "status", "--json")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}

	var statuses []depStatus
	if err := json.Unmarshal([]byte(out), &statuses); err != nil {
		t.Fatalf("decoding status output: %v\n%s", err, out)
	}
	if len(statuses) != 2 {
		t.Fatalf("got %d statuses, want 2", len(statuses))
	}
	// Output is ordered by name.
	if statuses[0].Name != "missing-lib" || statuses[0].State != "missing" {
		t.Errorf("unexpected status: %+v", statuses[0])
	}
	if statuses[1].Name != "present-lib" || statuses[1].State != "present" {
		t.Errorf("unexpected status: %+v", statuses[1])
	}
}

func TestRunStatus_table(t *testing.T) {
	proj := setupProject(t, minimalManifest)
	testutil.CreateDepProject(t, proj, "mylib", "0.1.0")
	mp := filepath.Join(proj, manifest.Filename)

	if _, _, err := execute(t, "--manifest-path", mp, "add", "mylib", "--path", "mylib"); err != nil {
		t.Fatal(err)
	}

	out, _, err := execute(t, "--manifest-path", mp, "status")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !strings.Contains(out, "DEPENDENCY") || !strings.Contains(out, "mylib") {
		t.Errorf("unexpected table output:\n%s", out)
	}
}
