package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/grovetools/hooks/cli"
	"github.com/spf13/cobra"
)

// hookListing is the JSON shape of a configured hook.
type hookListing struct {
	ID     string   `json:"id"`
	Name   string   `json:"name,omitempty"`
	Repo   string   `json:"repo"`
	Rev    string   `json:"rev,omitempty"`
	Stages []string `json:"stages"`
}

func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the hooks configured in the manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			cfg, _, err := loadManifest(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			var listings []hookListing
			for i := range cfg.Repos {
				repo := &cfg.Repos[i]
				for j := range repo.Hooks {
					hook := &repo.Hooks[j]
					listings = append(listings, hookListing{
						ID:     hook.ID,
						Name:   hook.Name,
						Repo:   repo.Repo,
						Rev:    repo.Rev,
						Stages: hook.StagesOrDefault(cfg.DefaultStages),
					})
				}
			}

			if opts.JSONOutput {
				data, err := json.MarshalIndent(listings, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			idWidth := len("ID")
			repoWidth := len("REPO")
			for _, l := range listings {
				if len(l.ID) > idWidth {
					idWidth = len(l.ID)
				}
				if len(l.Repo) > repoWidth {
					repoWidth = len(l.Repo)
				}
			}

			fmt.Printf("%-*s  %-*s  %-10s  %s\n", idWidth, "ID", repoWidth, "REPO", "REV", "STAGES")
			for _, l := range listings {
				rev := l.Rev
				if rev == "" {
					rev = "-"
				}
				fmt.Printf("%-*s  %-*s  %-10s  %s\n", idWidth, l.ID, repoWidth, l.Repo, rev, strings.Join(l.Stages, ","))
			}
			return nil
		},
	}

	return cmd
}
