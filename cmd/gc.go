package cmd

import (
	"fmt"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/logging"
	"github.com/spf13/cobra"
)

func NewGCCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Remove cached hook repos the manifest no longer references",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)
			pretty := logging.NewPrettyLogger()

			cfg, _, err := loadManifest(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			st, err := newStore(logging.NewLogger("store"))
			if err != nil {
				return handler.Handle(err)
			}

			removed, err := st.GC(cfg)
			if err != nil {
				return handler.Handle(err)
			}

			if len(removed) == 0 {
				pretty.InfoPretty("Nothing to remove")
				return nil
			}
			pretty.Success(fmt.Sprintf("Removed %d cached repo(s)", len(removed)))
			if opts.Verbose {
				for _, dir := range removed {
					pretty.Path("removed", dir)
				}
			}
			return nil
		},
	}

	return cmd
}
