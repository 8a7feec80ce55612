package cmd

import (
	"time"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/runner"
	"github.com/spf13/cobra"
)

func NewWatchCmd() *cobra.Command {
	var (
		stage   string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [hook-id]",
		Short: "Re-run hooks whenever files change",
		Long: `Watch the repository and re-run the configured hooks whenever files
change. Hooks run against all tracked files. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			cfg, _, err := loadManifest(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			r, err := newRunner(cmd, cfg)
			if err != nil {
				return handler.Handle(err)
			}

			runOpts := runner.Options{
				Stage:   stage,
				Verbose: opts.Verbose,
				Timeout: timeout,
			}
			if len(args) == 1 {
				runOpts.HookID = args[0]
			}

			if err := r.Watch(cmd.Context(), runOpts); err != nil {
				return handler.Handle(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "hook-stage", "", "Stage to run (default pre-commit)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-hook timeout")

	return cmd
}
