package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/cairn/internal/config"
	"github.com/fbkclanna/cairn/internal/manifest"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script> [args...]",
		Short: "Run a [scripts] entry from the project root",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRun,
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	m, err := manifest.Load(cfg.ManifestPath())
	if err != nil {
		return err
	}

	script, ok := m.Scripts[args[0]]
	if !ok {
		return fmt.Errorf("no script named %q in %s", args[0], manifest.Filename)
	}

	argv := append(append([]string{}, script...), args[1:]...)
	cfg.Ui().Status("Running", strings.Join(argv, " "))

	c := exec.Command(argv[0], argv[1:]...)
	c.Dir = cfg.Root()
	c.Env = scriptEnv(cfg)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// scriptEnv is the child environment. Scripts that re-invoke the tool should
// use the exact binary that launched them, so its path is exported when it
// can be resolved.
func scriptEnv(cfg *config.Config) []string {
	env := os.Environ()
	exe, err := cfg.AppExe()
	if err != nil {
		cfg.Ui().Warn("%s", err)
		return env
	}
	return append(env, config.ExeEnv+"="+exe)
}
