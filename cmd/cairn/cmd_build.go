package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/fbkclanna/cairn/internal/deps"
	"github.com/fbkclanna/cairn/internal/lockfile"
	"github.com/fbkclanna/cairn/internal/manifest"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Resolve dependencies and build the project into the target directory",
		Args:  cobra.NoArgs,
		RunE:  runBuild,
	}
	cmd.Flags().Int("jobs", 0, "Number of parallel fetch workers")
	return cmd
}

// buildPlan is the unit summary written into the target directory.
type buildPlan struct {
	Name         string      `toml:"name"`
	Version      string      `toml:"version"`
	Dependencies []deps.Unit `toml:"dependencies,omitempty"`
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, st, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	jobs, err := jobsFor(cmd, st)
	if err != nil {
		return err
	}

	m, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return err
	}

	// An existing lock file pins git dependencies for reproducible builds;
	// without one, the manifest refs are resolved and a lock is written.
	lockPath := filepath.Join(cfg.Root(), lockfile.Filename)
	var lf *lockfile.File
	if _, statErr := os.Stat(lockPath); statErr == nil {
		if lf, err = lockfile.Load(lockPath); err != nil {
			return err
		}
	}

	units, err := deps.NewResolver(cfg, jobs, lf != nil).Resolve(m, lf)
	if err != nil {
		return err
	}
	if err := lockfile.Save(lockPath, deps.Lockfile(units, version)); err != nil {
		return err
	}

	cfg.Ui().Status("Compiling", fmt.Sprintf("%s v%s", m.Package.Name, m.Package.Version))

	// Creating the target root first ensures it gets its CACHEDIR.TAG.
	if _, err := cfg.TargetDir().Path(); err != nil {
		return err
	}
	targetDir, err := cfg.TargetDir().Child("dev").Path()
	if err != nil {
		return err
	}
	plan := buildPlan{
		Name:         m.Package.Name,
		Version:      m.Package.Version,
		Dependencies: units,
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(plan); err != nil {
		return fmt.Errorf("marshaling build plan: %w", err)
	}
	planPath := filepath.Join(targetDir, m.Package.Name+".build.toml")
	if err := os.WriteFile(planPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing build plan: %w", err)
	}

	cfg.Ui().Status("Finished", fmt.Sprintf("dev target(s) in %.2fs", cfg.ElapsedTime().Seconds()))
	return nil
}
