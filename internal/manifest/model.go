package manifest

// Filename is the manifest file name marking the project root.
const Filename = "Cairn.toml"

// Manifest represents a parsed Cairn.toml.
type Manifest struct {
	Package      Package               `toml:"package"`
	Dependencies map[string]Dependency `toml:"dependencies,omitempty"`
	Scripts      map[string][]string   `toml:"scripts,omitempty"`
}

// Package is the [package] section.
type Package struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description,omitempty"`
}

// Dependency describes where a dependency comes from: a local directory or a
// git repository. Exactly one source must be set.
type Dependency struct {
	Path   string `toml:"path,omitempty"`
	Git    string `toml:"git,omitempty"`
	Branch string `toml:"branch,omitempty"`
	Tag    string `toml:"tag,omitempty"`
	Rev    string `toml:"rev,omitempty"`
}

// IsPath reports whether this is a local path dependency.
func (d Dependency) IsPath() bool {
	return d.Path != ""
}

// IsGit reports whether this is a git dependency.
func (d Dependency) IsGit() bool {
	return d.Git != ""
}

// GitRef returns the requested git reference, most specific first.
// Empty means the repository's default branch.
func (d Dependency) GitRef() string {
	switch {
	case d.Rev != "":
		return d.Rev
	case d.Tag != "":
		return d.Tag
	default:
		return d.Branch
	}
}

// Source renders a stable identifier for the dependency source, used in the
// lockfile and in status output.
func (d Dependency) Source() string {
	if d.IsPath() {
		return "path+" + d.Path
	}
	return "git+" + d.Git
}
