package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/runner"
	"github.com/spf13/cobra"
)

func NewRunCmd() *cobra.Command {
	var (
		stage         string
		allFiles      bool
		files         []string
		commitMsgFile string
		timeout       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run [hook-id]",
		Short: "Run the hooks configured for a stage",
		Long: `Run the hooks configured for a stage against the relevant files.

For the pre-commit stage the staged files are used; other stages run
against all tracked files. A single hook can be selected by passing its
id as an argument.`,
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
			if opts.JSONOutput {
				r = r.WithOutput(os.Stderr)
			}

			runOpts := runner.Options{
				Stage:         stage,
				AllFiles:      allFiles,
				Files:         files,
				CommitMsgFile: commitMsgFile,
				Verbose:       opts.Verbose,
				Timeout:       timeout,
			}
			if len(args) == 1 {
				runOpts.HookID = args[0]
			}

			report, err := r.Run(cmd.Context(), runOpts)
			if err != nil {
				return handler.Handle(err)
			}

			if opts.JSONOutput {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			}

			if report.Failed() {
				os.Exit(1)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "hook-stage", "", "Stage to run (default pre-commit)")
	cmd.Flags().BoolVarP(&allFiles, "all-files", "a", false, "Run against all tracked files instead of staged files")
	cmd.Flags().StringSliceVar(&files, "files", nil, "Run against these files only")
	cmd.Flags().StringVar(&commitMsgFile, "commit-msg-file", "", "Path to the commit message file (commit-msg stage)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Per-hook timeout")

	return cmd
}
