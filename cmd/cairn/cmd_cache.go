package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/cairn/internal/config"
	"github.com/fbkclanna/cairn/internal/dirs"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the package cache",
	}
	cmd.AddCommand(newCachePathCmd())
	cmd.AddCommand(newCacheCleanCmd())
	return cmd
}

func newCachePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the package cache directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := dirs.New()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.CacheDir.Root())
			return nil
		},
	}
}

func newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove all cached packages",
		Args:  cobra.NoArgs,
		RunE:  runCacheClean,
	}
}

// runCacheClean works without a project. It takes the same advisory lock
// used during resolution so it cannot race a concurrent fetch.
func runCacheClean(cmd *cobra.Command, _ []string) error {
	d, err := dirs.New()
	if err != nil {
		return err
	}
	u := newUI(cmd)

	lock, err := d.CacheDir.AdvisoryLock(config.PackageCacheLockName, "package cache", u)
	if err != nil {
		return err
	}
	guard, err := lock.Acquire()
	if err != nil {
		return err
	}
	defer guard.Release()

	registry := d.CacheDir.Child("registry").Root()
	if err := os.RemoveAll(registry); err != nil {
		return fmt.Errorf("removing cached packages: %w", err)
	}
	u.Status("Cleaned", d.CacheDir.Root())
	return nil
}
