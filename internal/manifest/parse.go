package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/BurntSushi/toml"
)

var nameRe = regexp.MustCompile(`^[a-z0-9_][a-z0-9_-]*$`)

// Load reads and validates a Cairn.toml file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates Cairn.toml content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest TOML: %w", err)
	}
	if err := validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for errors.
func Validate(m *Manifest) error { return validate(m) }

// Save validates and writes a manifest to disk.
func Save(path string, m *Manifest) error {
	if err := validate(m); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Find walks upward from dir looking for a Cairn.toml, returning its
// absolute path.
func Find(dir string) (string, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving search directory: %w", err)
	}
	for cur := start; ; {
		candidate := filepath.Join(cur, Filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", fmt.Errorf("could not find %s in %s or any parent directory", Filename, start)
		}
		cur = parent
	}
}

func validate(m *Manifest) error {
	if m.Package.Name == "" {
		return fmt.Errorf("manifest: package.name is required")
	}
	if !nameRe.MatchString(m.Package.Name) {
		return fmt.Errorf("manifest: invalid package name %q: use lowercase letters, digits, - and _", m.Package.Name)
	}
	if m.Package.Version == "" {
		return fmt.Errorf("manifest: package.version is required")
	}

	for name, dep := range m.Dependencies {
		if err := validateDependency(name, dep); err != nil {
			return err
		}
	}

	for name, argv := range m.Scripts {
		if name == "" {
			return fmt.Errorf("manifest: script name must not be empty")
		}
		if len(argv) == 0 {
			return fmt.Errorf("manifest: script %q must have a non-empty command", name)
		}
	}
	return nil
}

func validateDependency(name string, dep Dependency) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("manifest: invalid dependency name %q", name)
	}
	if dep.IsPath() == dep.IsGit() {
		return fmt.Errorf("manifest: dependency %q must specify exactly one of path or git", name)
	}
	if dep.IsPath() {
		if dep.Branch != "" || dep.Tag != "" || dep.Rev != "" {
			return fmt.Errorf("manifest: dependency %q: branch/tag/rev apply only to git sources", name)
		}
		if filepath.IsAbs(dep.Path) {
			return fmt.Errorf("manifest: dependency %q: path must be relative to the project root: %s", name, dep.Path)
		}
	}
	refs := 0
	for _, r := range []string{dep.Branch, dep.Tag, dep.Rev} {
		if r != "" {
			refs++
		}
	}
	if refs > 1 {
		return fmt.Errorf("manifest: dependency %q: specify at most one of branch, tag, rev", name)
	}
	return nil
}
