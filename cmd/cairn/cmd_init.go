package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fbkclanna/cairn/internal/git"
	"github.com/fbkclanna/cairn/internal/manifest"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Create a new project",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
	cmd.Flags().String("path", ".", "Directory to create the project in")
	cmd.Flags().Bool("no-git", false, "Skip git repository initialization")
	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	base, _ := cmd.Flags().GetString("path")
	noGit, _ := cmd.Flags().GetBool("no-git")

	var name string
	switch {
	case len(args) == 1:
		name = args[0]
	case term.IsTerminal(int(os.Stdin.Fd())):
		var err error
		name, err = promptInput("Package name", "hello", validatePackageName)
		if err != nil {
			return fmt.Errorf("interactive setup: %w", err)
		}
	default:
		return fmt.Errorf("a package name is required when not running interactively")
	}
	if err := validatePackageName(name); err != nil {
		return err
	}

	projDir := filepath.Join(base, name)
	manifestPath := filepath.Join(projDir, manifest.Filename)
	if _, err := os.Stat(manifestPath); err == nil {
		return fmt.Errorf("project %q already exists at %s", name, projDir)
	}

	if err := os.MkdirAll(projDir, 0755); err != nil {
		return fmt.Errorf("creating project directory: %w", err)
	}

	m := &manifest.Manifest{
		Package: manifest.Package{Name: name, Version: "0.1.0"},
	}
	if err := manifest.Save(manifestPath, m); err != nil {
		return err
	}

	gitignorePath := filepath.Join(projDir, ".gitignore")
	if err := os.WriteFile(gitignorePath, []byte("target/\n"), 0644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if !noGit && git.IsGitInstalled() && !git.IsCloned(projDir) {
		if err := git.Init(projDir); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: git init failed: %v\n", err)
		}
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created project %q at %s\n", name, projDir)
	return nil
}

func validatePackageName(name string) error {
	m := &manifest.Manifest{Package: manifest.Package{Name: name, Version: "0.1.0"}}
	return manifest.Validate(m)
}
