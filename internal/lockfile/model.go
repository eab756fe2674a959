package lockfile

// Filename is the lock file name, written next to the manifest.
const Filename = "Cairn.lock"

// File represents Cairn.lock.
type File struct {
	Version     int       `toml:"version"`
	GeneratedAt string    `toml:"generated_at"`
	ToolVersion string    `toml:"tool_version"`
	Packages    []Package `toml:"package,omitempty"`
}

// Package records the pinned state of a single dependency.
type Package struct {
	Name    string `toml:"name"`
	Version string `toml:"version,omitempty"`
	Source  string `toml:"source"`
	Commit  string `toml:"commit,omitempty"`
}

// Get returns the pinned entry for a dependency name.
func (f *File) Get(name string) (Package, bool) {
	for _, p := range f.Packages {
		if p.Name == name {
			return p, true
		}
	}
	return Package{}, false
}
