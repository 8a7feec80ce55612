package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const sampleConfig = `# grove-hooks manifest. See 'grove-hooks schema' for the full format.
repos:
  - repo: https://github.com/grovetools/hooks-standard
    rev: v1.2.0
    hooks:
      - id: trailing-whitespace
      - id: end-of-file-fixer
        exclude: "testdata/"
  - repo: builtin
    hooks:
      - id: check-hooks-apply
      - id: check-useless-exclude
`

func NewSampleConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample-config",
		Short: "Print a starter hook manifest",
		Long: `Print a starter hook manifest to stdout.

Redirect it to create a manifest:

  grove-hooks sample-config > .grove-hooks.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Print(sampleConfig)
			return nil
		},
	}

	return cmd
}
