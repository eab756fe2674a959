package git

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// IsGitInstalled returns true if git is available on the system PATH.
func IsGitInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init runs git init in the given directory.
func Init(dir string) error {
	return run(dir, "init", "--quiet")
}

// IsCloned returns true if the directory is a git repository.
func IsCloned(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Clone clones a repository into dest.
func Clone(url, dest string) error {
	if err := run(".", "clone", "--quiet", url, dest); err != nil {
		return fmt.Errorf("cloning %s: %w", url, err)
	}
	return nil
}

// Fetch updates all remotes in the given checkout.
func Fetch(dir string) error {
	if err := run(dir, "fetch", "--quiet", "--tags", "--prune"); err != nil {
		return fmt.Errorf("fetching %s: %w", dir, err)
	}
	return nil
}

// Checkout checks out the given ref, detaching HEAD so cache checkouts never
// sit on a mutable branch.
func Checkout(dir, ref string) error {
	if err := run(dir, "checkout", "--quiet", "--detach", ref); err != nil {
		return fmt.Errorf("checking out %s: %w", ref, err)
	}
	return nil
}

// HeadCommit returns the full SHA of HEAD.
func HeadCommit(dir string) (string, error) {
	out, err := output(dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsReachable verifies that a repository URL can be contacted.
func IsReachable(url string) bool {
	cmd := exec.Command("git", "ls-remote", "--exit-code", "--quiet", url)
	return cmd.Run() == nil
}

// run executes a git command in the given directory, surfacing stderr in the
// returned error.
func run(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return nil
}

// output executes a git command and returns its stdout.
func output(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
