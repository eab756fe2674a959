package lockfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads a Cairn.lock file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading lock file: %w", err)
	}
	return Parse(data)
}

// Parse parses Cairn.lock content.
func Parse(data []byte) (*File, error) {
	var lf File
	if err := toml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parsing lock file TOML: %w", err)
	}
	return &lf, nil
}

// Save writes the lock file to disk.
func Save(path string, lf *File) error {
	var buf bytes.Buffer
	buf.WriteString("# This file is automatically generated by cairn.\n# Do not edit it manually.\n\n")
	if err := toml.NewEncoder(&buf).Encode(lf); err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing lock file: %w", err)
	}
	return nil
}
