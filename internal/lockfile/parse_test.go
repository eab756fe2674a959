package lockfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLock = `
version = 1
generated_at = "2026-08-01T12:00:00Z"
tool_version = "0.1.0"

[[package]]
name = "utils"
version = "0.3.0"
source = "path+../utils"

[[package]]
name = "quaint"
source = "git+https://example.com/quaint.git"
commit = "0123456789abcdef0123456789abcdef01234567"
`

func TestParse(t *testing.T) {
	lf, err := Parse([]byte(sampleLock))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if lf.Version != 1 || lf.ToolVersion != "0.1.0" {
		t.Errorf("header = %+v", lf)
	}
	if len(lf.Packages) != 2 {
		t.Fatalf("len(Packages) = %d, want 2", len(lf.Packages))
	}

	quaint, ok := lf.Get("quaint")
	if !ok {
		t.Fatal("Get(quaint) not found")
	}
	if quaint.Commit != "0123456789abcdef0123456789abcdef01234567" {
		t.Errorf("quaint.Commit = %q", quaint.Commit)
	}

	if _, ok := lf.Get("missing"); ok {
		t.Error("Get(missing) should report absence")
	}
}

func TestParse_invalid(t *testing.T) {
	if _, err := Parse([]byte("version = [broken")); err == nil {
		t.Fatal("Parse() should fail on malformed TOML")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), Filename)
	lf := &File{
		Version:     1,
		GeneratedAt: "2026-08-01T12:00:00Z",
		ToolVersion: "dev",
		Packages: []Package{
			{Name: "utils", Version: "0.3.0", Source: "path+../utils"},
		},
	}
	if err := Save(path, lf); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# This file is automatically generated by cairn.") {
		t.Errorf("missing generated header: %q", string(data[:60]))
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(got.Packages) != 1 || got.Packages[0].Name != "utils" {
		t.Errorf("loaded lock file = %+v", got)
	}
}
