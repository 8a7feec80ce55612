package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/logging"
	"github.com/spf13/cobra"
)

func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the hook manifest",
		Long: `Validate the hook manifest against the schema and the semantic rules.

Redundancies such as duplicate hook ids within a repo block are reported
as warnings and do not fail validation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)
			pretty := logging.NewPrettyLogger()

			cfg, path, err := loadManifest(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			warnings := cfg.Lint()

			if opts.JSONOutput {
				out := struct {
					Path     string   `json:"path"`
					Valid    bool     `json:"valid"`
					Warnings []string `json:"warnings,omitempty"`
				}{Path: path, Valid: true}
				for _, w := range warnings {
					out.Warnings = append(out.Warnings, w.String())
				}
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			pretty.Success(fmt.Sprintf("%s is valid", path))
			for _, w := range warnings {
				pretty.WarnPretty(w.String())
			}
			return nil
		},
	}

	return cmd
}
