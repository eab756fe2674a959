package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/cairn/internal/config"
	"github.com/fbkclanna/cairn/internal/dirs"
	"github.com/fbkclanna/cairn/internal/manifest"
	"github.com/fbkclanna/cairn/internal/settings"
	"github.com/fbkclanna/cairn/internal/ui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cairn",
		Short:   "Package-oriented build tool",
		Version: version,
	}

	cmd.PersistentFlags().String("manifest-path", "", "Path to Cairn.toml (default: search upward from the current directory)")
	cmd.PersistentFlags().String("target-dir", "", "Directory for build output (default: <project root>/target)")
	cmd.PersistentFlags().Bool("offline", false, "Run without accessing the network")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Print less output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Print more output")

	cmd.AddCommand(
		newInitCmd(),
		newAddCmd(),
		newFetchCmd(),
		newBuildCmd(),
		newStatusCmd(),
		newRunCmd(),
		newCleanCmd(),
		newCacheCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// loadConfig builds the per-invocation Config from flags, the environment
// and the per-user settings file. It is called once at the top of every
// command that operates on a project, before any worker goroutines start.
func loadConfig(cmd *cobra.Command) (*config.Config, *settings.Settings, error) {
	manifestPath, _ := cmd.Flags().GetString("manifest-path")
	targetDir, _ := cmd.Flags().GetString("target-dir")
	offline, _ := cmd.Flags().GetBool("offline")

	var err error
	if manifestPath == "" {
		manifestPath, err = manifest.Find(".")
	} else {
		manifestPath, err = filepath.Abs(manifestPath)
	}
	if err != nil {
		return nil, nil, err
	}

	d, err := dirs.New()
	if err != nil {
		return nil, nil, err
	}

	st, err := settings.Load(d.ConfigDir)
	if err != nil {
		return nil, nil, err
	}

	opts := config.Options{}
	if targetDir != "" {
		opts.TargetDirOverride, err = filepath.Abs(targetDir)
		if err != nil {
			return nil, nil, err
		}
	}

	cfg, err := config.Init(manifestPath, d, newUI(cmd), opts)
	if err != nil {
		return nil, nil, err
	}
	if offline || st.Offline {
		cfg.SetOffline(true)
	}

	initLogging(cfg.LogFilter(), cmd.ErrOrStderr())
	for _, line := range strings.Split(strings.TrimRight(d.String(), "\n"), "\n") {
		slog.Debug(line)
	}

	return cfg, st, nil
}

func newUI(cmd *cobra.Command) *ui.Ui {
	quiet, _ := cmd.Flags().GetBool("quiet")
	verbose, _ := cmd.Flags().GetBool("verbose")

	verbosity := ui.Normal
	switch {
	case quiet:
		verbosity = ui.Quiet
	case verbose:
		verbosity = ui.Verbose
	}
	return ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), verbosity)
}

func jobsFor(cmd *cobra.Command, st *settings.Settings) (int, error) {
	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs == 0 {
		jobs = st.Jobs
	}
	if jobs < 1 {
		return 0, fmt.Errorf("--jobs must be >= 1 (got %d)", jobs)
	}
	return jobs, nil
}
