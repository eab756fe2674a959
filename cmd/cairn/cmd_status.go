package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/cairn/internal/config"
	"github.com/fbkclanna/cairn/internal/deps"
	"github.com/fbkclanna/cairn/internal/git"
	"github.com/fbkclanna/cairn/internal/lockfile"
	"github.com/fbkclanna/cairn/internal/manifest"
	"github.com/fbkclanna/cairn/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of each dependency",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type depStatus struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	State  string `json:"state"`
	Locked string `json:"locked,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return err
	}

	var lf *lockfile.File
	lockPath := filepath.Join(cfg.Root(), lockfile.Filename)
	if _, statErr := os.Stat(lockPath); statErr == nil {
		if lf, err = lockfile.Load(lockPath); err != nil {
			return err
		}
	}

	names := make([]string, 0, len(m.Dependencies))
	for name := range m.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	statuses := make([]depStatus, 0, len(names))
	for _, name := range names {
		statuses = append(statuses, collectStatus(cfg, lf, name, m.Dependencies[name]))
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tbl := ui.NewTable(out, "DEPENDENCY", "SOURCE", "STATE", "LOCKED")
	for _, s := range statuses {
		tbl.Row(s.Name, s.Source, s.State, s.Locked)
	}
	return tbl.Flush()
}

func collectStatus(cfg *config.Config, lf *lockfile.File, name string, dep manifest.Dependency) depStatus {
	s := depStatus{Name: name, Source: dep.Source()}

	if dep.IsPath() {
		dir := filepath.Join(cfg.Root(), dep.Path)
		if _, err := os.Stat(filepath.Join(dir, manifest.Filename)); err == nil {
			s.State = "present"
		} else {
			s.State = "missing"
		}
	} else {
		if git.IsCloned(deps.CacheCheckoutDir(cfg, name, dep)) {
			s.State = "cached"
		} else {
			s.State = "not cached"
		}
	}

	if lf != nil {
		if pin, ok := lf.Get(name); ok && pin.Commit != "" {
			s.Locked = pin.Commit[:min(len(pin.Commit), 7)]
		}
	}
	return s
}
