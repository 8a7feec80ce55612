package cmd

import (
	"os"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/config"
	"github.com/grovetools/hooks/git"
	"github.com/grovetools/hooks/logging"
	"github.com/grovetools/hooks/runner"
	"github.com/grovetools/hooks/store"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// loadManifest resolves the manifest path from the --config flag (or by
// searching upward from the working directory) and loads it.
func loadManifest(cmd *cobra.Command) (*config.Config, string, error) {
	path, err := cli.ResolveConfigFile(cmd)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}

	return cfg, path, nil
}

// newStore builds a clone store rooted at the configured cache directory.
func newStore(log *logrus.Entry) (*store.Store, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	return store.New(settings.CacheDir, log), nil
}

// newRunner wires a runner for the repository containing the working
// directory.
func newRunner(cmd *cobra.Command, cfg *config.Config) (*runner.Runner, error) {
	logger := cli.GetLogger(cmd)
	log := logrus.NewEntry(logger).WithField("component", "runner")

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	st, err := newStore(logging.NewLogger("store"))
	if err != nil {
		return nil, err
	}

	return runner.New(cfg, git.NewRepository(cwd), st, log), nil
}
