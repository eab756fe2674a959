package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/cairn/internal/manifest"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a dependency to Cairn.toml",
		Args:  cobra.ExactArgs(1),
		RunE:  runAdd,
	}
	cmd.Flags().String("path", "", "Local directory source, relative to the project root")
	cmd.Flags().String("git", "", "Git repository source URL")
	cmd.Flags().String("branch", "", "Git branch to track")
	cmd.Flags().String("tag", "", "Git tag to pin")
	cmd.Flags().String("rev", "", "Git revision to pin")
	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	path, _ := cmd.Flags().GetString("path")
	gitURL, _ := cmd.Flags().GetString("git")
	branch, _ := cmd.Flags().GetString("branch")
	tag, _ := cmd.Flags().GetString("tag")
	rev, _ := cmd.Flags().GetString("rev")

	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return err
	}
	if _, exists := m.Dependencies[name]; exists {
		return fmt.Errorf("dependency %q is already in the manifest", name)
	}

	dep := manifest.Dependency{
		Path:   path,
		Git:    gitURL,
		Branch: branch,
		Tag:    tag,
		Rev:    rev,
	}
	if m.Dependencies == nil {
		m.Dependencies = make(map[string]manifest.Dependency)
	}
	m.Dependencies[name] = dep

	// Save re-validates, catching conflicting or missing sources.
	if err := manifest.Save(cfg.ManifestPath(), m); err != nil {
		return err
	}

	cfg.Ui().Status("Adding", fmt.Sprintf("%s (%s)", name, dep.Source()))
	return nil
}
