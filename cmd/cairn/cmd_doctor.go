package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/cairn/internal/config"
	"github.com/fbkclanna/cairn/internal/dirs"
	"github.com/fbkclanna/cairn/internal/git"
	"github.com/fbkclanna/cairn/internal/manifest"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment for common issues",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	// Check git.
	_, _ = fmt.Fprint(out, "Checking git... ")
	if git.IsGitInstalled() {
		_, _ = fmt.Fprintln(out, "OK")
	} else {
		_, _ = fmt.Fprintln(out, "NOT FOUND")
		_, _ = fmt.Fprintln(out, "  git is required for git dependencies. Install it from https://git-scm.com/")
		ok = false
	}

	// Check that the package cache is usable. Taking the advisory lock
	// exercises directory creation and write access in one step.
	_, _ = fmt.Fprint(out, "Checking package cache... ")
	d, err := dirs.New()
	if err != nil {
		_, _ = fmt.Fprintf(out, "ERROR\n  %v\n", err)
		ok = false
	} else if cacheOK := checkCacheWritable(cmd, d); cacheOK {
		_, _ = fmt.Fprintf(out, "OK (%s)\n", d.CacheDir.Root())
	} else {
		ok = false
	}

	// Project checks only apply inside one.
	if !checkProject(cmd, out) {
		ok = false
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

func checkCacheWritable(cmd *cobra.Command, d *dirs.AppDirs) bool {
	out := cmd.OutOrStdout()
	lock, err := d.CacheDir.AdvisoryLock(config.PackageCacheLockName, "package cache", newUI(cmd))
	if err != nil {
		_, _ = fmt.Fprintf(out, "ERROR\n  %v\n", err)
		return false
	}
	guard, err := lock.Acquire()
	if err != nil {
		_, _ = fmt.Fprintf(out, "ERROR\n  %v\n", err)
		return false
	}
	guard.Release()
	return true
}

func checkProject(cmd *cobra.Command, out io.Writer) bool {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		_, _ = fmt.Fprintln(out, "No project found in current directory (skipping project checks)")
		return true
	}

	_, _ = fmt.Fprintf(out, "Project: %s\n", cfg.Root())

	ok := true

	_, _ = fmt.Fprint(out, "Checking executable resolution... ")
	if exe, err := cfg.AppExe(); err != nil {
		_, _ = fmt.Fprintf(out, "ERROR\n  %v\n", err)
		ok = false
	} else {
		_, _ = fmt.Fprintf(out, "OK (%s)\n", exe)
	}

	m, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		_, _ = fmt.Fprintf(out, "Checking manifest... ERROR\n  %v\n", err)
		return false
	}

	for name, dep := range m.Dependencies {
		if !dep.IsGit() {
			continue
		}
		_, _ = fmt.Fprintf(out, "  Checking %s (%s)... ", name, dep.Git)
		if !cfg.NetworkAllowed() {
			_, _ = fmt.Fprintln(out, "SKIPPED (offline)")
			continue
		}
		if git.IsReachable(dep.Git) {
			_, _ = fmt.Fprintln(out, "OK")
		} else {
			_, _ = fmt.Fprintln(out, "FAILED (cannot access)")
			ok = false
		}
	}
	return ok
}
