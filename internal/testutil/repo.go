package testutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// CreateBareRepo creates a bare git repository with an initial commit in a
// temp directory. Returns the path to the bare repo, usable as a clone URL.
func CreateBareRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	bare := filepath.Join(dir, "repo.git")

	work := initWorkRepo(t, dir)

	run(t, dir, "git", "clone", "--quiet", "--bare", work, bare)
	return bare
}

// CreateBareRepoWithTag creates a bare repo whose initial commit carries the
// given tag.
func CreateBareRepoWithTag(t *testing.T, tag string) string {
	t.Helper()
	dir := t.TempDir()
	bare := filepath.Join(dir, "repo.git")

	work := initWorkRepo(t, dir)
	run(t, work, "git", "tag", tag)

	run(t, dir, "git", "clone", "--quiet", "--bare", work, bare)
	return bare
}

// CreateDepProject writes a minimal dependency project (a directory holding
// its own Cairn.toml) and returns its path.
func CreateDepProject(t *testing.T, dir, name, version string) string {
	t.Helper()
	proj := filepath.Join(dir, name)
	if err := os.MkdirAll(proj, 0755); err != nil {
		t.Fatal(err)
	}
	manifest := fmt.Sprintf("[package]\nname = %q\nversion = %q\n", name, version)
	if err := os.WriteFile(filepath.Join(proj, "Cairn.toml"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}
	return proj
}

func initWorkRepo(t *testing.T, dir string) string {
	t.Helper()
	work := filepath.Join(dir, "work")
	run(t, dir, "git", "init", "--quiet", "-b", "main", work)
	run(t, work, "git", "config", "user.email", "test@example.com")
	run(t, work, "git", "config", "user.name", "Test")

	manifest := filepath.Join(work, "Cairn.toml")
	content := "[package]\nname = \"dep\"\nversion = \"0.1.0\"\n"
	if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "--quiet", "-m", "initial commit")
	return work
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
