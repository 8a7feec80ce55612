package cmd

import (
	"fmt"

	"github.com/grovetools/hooks/schema"
	"github.com/spf13/cobra"
)

func NewSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema for the hook manifest",
		Long: `Print the JSON schema used to validate hook manifests.

The output can be fed to editors and language servers for completion
and inline validation of .grove-hooks.yaml files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(string(schema.EmbeddedSchema()))
			return nil
		},
	}

	return cmd
}
