package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove the target directory",
		Args:  cobra.NoArgs,
		RunE:  runClean,
	}
}

func runClean(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	target := cfg.TargetDir().Root()
	if target == string(filepath.Separator) {
		return fmt.Errorf("refusing to clean root directory: %s", target)
	}

	if _, err := os.Stat(target); os.IsNotExist(err) {
		cfg.Ui().Status("Cleaning", "nothing to clean")
		return nil
	}

	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("removing target directory: %w", err)
	}
	cfg.Ui().Status("Cleaned", target)
	return nil
}
