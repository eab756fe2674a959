package git

import (
	"path/filepath"
	"testing"

	"github.com/fbkclanna/cairn/internal/testutil"
)

func requireGit(t *testing.T) {
	t.Helper()
	if !IsGitInstalled() {
		t.Skip("git is not installed")
	}
}

func TestCloneAndIsCloned(t *testing.T) {
	requireGit(t)
	bare := testutil.CreateBareRepo(t)
	dest := filepath.Join(t.TempDir(), "checkout")

	if IsCloned(dest) {
		t.Error("IsCloned should be false before clone")
	}
	if err := Clone(bare, dest); err != nil {
		t.Fatalf("Clone() error: %v", err)
	}
	if !IsCloned(dest) {
		t.Error("IsCloned should be true after clone")
	}
}

func TestClone_badURL(t *testing.T) {
	requireGit(t)
	dest := filepath.Join(t.TempDir(), "checkout")
	if err := Clone(filepath.Join(t.TempDir(), "missing.git"), dest); err == nil {
		t.Fatal("Clone() should fail for a nonexistent repository")
	}
}

func TestHeadCommit(t *testing.T) {
	requireGit(t)
	bare := testutil.CreateBareRepo(t)
	dest := filepath.Join(t.TempDir(), "checkout")
	if err := Clone(bare, dest); err != nil {
		t.Fatal(err)
	}

	sha, err := HeadCommit(dest)
	if err != nil {
		t.Fatalf("HeadCommit() error: %v", err)
	}
	if len(sha) != 40 {
		t.Errorf("HeadCommit() = %q, want a full 40-char SHA", sha)
	}
}

func TestCheckoutTagAndFetch(t *testing.T) {
	requireGit(t)
	bare := testutil.CreateBareRepoWithTag(t, "v1.0.0")
	dest := filepath.Join(t.TempDir(), "checkout")
	if err := Clone(bare, dest); err != nil {
		t.Fatal(err)
	}

	if err := Checkout(dest, "v1.0.0"); err != nil {
		t.Fatalf("Checkout() error: %v", err)
	}
	if err := Fetch(dest); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
}

func TestIsReachable(t *testing.T) {
	requireGit(t)
	bare := testutil.CreateBareRepo(t)

	if !IsReachable(bare) {
		t.Error("IsReachable should be true for a local bare repo")
	}
	if IsReachable(filepath.Join(t.TempDir(), "missing.git")) {
		t.Error("IsReachable should be false for a missing repo")
	}
}
