package cmd

import (
	"fmt"
	"os"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/config"
	"github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/git"
	"github.com/grovetools/hooks/logging"
	"github.com/spf13/cobra"
)

func NewInstallCmd() *cobra.Command {
	var stages []string

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install grove-hooks stubs into .git/hooks",
		Long: `Install grove-hooks stubs into the repository's .git/hooks directory.

Existing hooks that were not written by grove-hooks are preserved with a
.pre-grove-hooks suffix and restored on uninstall.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)
			pretty := logging.NewPrettyLogger()

			for _, stage := range stages {
				if !config.IsKnownStage(stage) {
					return handler.Handle(errors.StageUnknown(stage))
				}
			}
			if len(stages) == 0 {
				if cfg, _, err := loadManifest(cmd); err == nil {
					stages = manifestStages(cfg)
				} else {
					stages = []string{config.StagePreCommit}
				}
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			root, err := git.NewRepository(cwd).Root(cmd.Context())
			if err != nil {
				return handler.Handle(err)
			}

			binary, err := os.Executable()
			if err != nil {
				binary = "grove-hooks"
			}

			if err := git.NewHookManager(binary).Install(cmd.Context(), root, stages); err != nil {
				return handler.Handle(err)
			}

			for _, stage := range stages {
				pretty.Success(fmt.Sprintf("Installed %s hook", stage))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&stages, "stage", "s", nil, "Stage to install (repeatable, default from the manifest)")

	return cmd
}

func NewUninstallCmd() *cobra.Command {
	var stages []string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove grove-hooks stubs from .git/hooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)
			pretty := logging.NewPrettyLogger()

			if len(stages) == 0 {
				stages = config.KnownStages
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			root, err := git.NewRepository(cwd).Root(cmd.Context())
			if err != nil {
				return handler.Handle(err)
			}

			if err := git.NewHookManager("grove-hooks").Uninstall(cmd.Context(), root, stages); err != nil {
				return handler.Handle(err)
			}

			pretty.Success("Removed grove-hooks stubs")
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&stages, "stage", "s", nil, "Stage to uninstall (repeatable, default all)")

	return cmd
}

// manifestStages collects every stage any hook in the manifest runs on.
func manifestStages(cfg *config.Config) []string {
	seen := make(map[string]bool)
	var stages []string
	for i := range cfg.Repos {
		for j := range cfg.Repos[i].Hooks {
			for _, stage := range cfg.Repos[i].Hooks[j].StagesOrDefault(cfg.DefaultStages) {
				if !seen[stage] {
					seen[stage] = true
					stages = append(stages, stage)
				}
			}
		}
	}
	if len(stages) == 0 {
		stages = []string{config.StagePreCommit}
	}
	return stages
}
