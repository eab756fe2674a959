package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/cairn/internal/deps"
	"github.com/fbkclanna/cairn/internal/lockfile"
	"github.com/fbkclanna/cairn/internal/manifest"
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch all dependencies and update Cairn.lock",
		Args:  cobra.NoArgs,
		RunE:  runFetch,
	}
	cmd.Flags().Int("jobs", 0, "Number of parallel fetch workers")
	cmd.Flags().Bool("locked", false, "Use the commits pinned in Cairn.lock")
	return cmd
}

func runFetch(cmd *cobra.Command, _ []string) error {
	locked, _ := cmd.Flags().GetBool("locked")

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

	lockPath := filepath.Join(cfg.Root(), lockfile.Filename)
	var lf *lockfile.File
	if _, statErr := os.Stat(lockPath); statErr == nil {
		if lf, err = lockfile.Load(lockPath); err != nil {
			return err
		}
	}
	if locked && lf == nil {
		return fmt.Errorf("--locked specified but no %s found", lockfile.Filename)
	}

	units, err := deps.NewResolver(cfg, jobs, locked).Resolve(m, lf)
	if err != nil {
		return err
	}

	if err := lockfile.Save(lockPath, deps.Lockfile(units, version)); err != nil {
		return err
	}

	cfg.Ui().Status("Fetched", fmt.Sprintf("%d dependencies", len(units)))
	return nil
}
