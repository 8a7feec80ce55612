package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/config"
	"github.com/grovetools/hooks/git"
	"github.com/grovetools/hooks/logging"
	"github.com/spf13/cobra"
)

func NewAutoupdateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "autoupdate",
		Short: "Update pinned revs to the latest tags",
		Long: `Update each remote repo's pinned rev to the latest version tag.

The manifest is rewritten in place; comments and formatting are
preserved. Repos whose remote has no version tags are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)
			pretty := logging.NewPrettyLogger()
			logger := cli.GetLogger(cmd)

			cfg, path, err := loadManifest(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			repo := git.NewRepository(cwd)

			updates := make(map[string]string)
			for i := range cfg.Repos {
				block := &cfg.Repos[i]
				if !block.IsRemote() {
					continue
				}

				tags, err := repo.LsRemoteTags(cmd.Context(), block.Repo)
				if err != nil {
					logger.WithError(err).Warnf("skipping %s", block.Repo)
					continue
				}

				latest := latestTag(tags)
				if latest == "" {
					logger.Debugf("no version tags for %s", block.Repo)
					continue
				}
				if latest == block.Rev {
					continue
				}

				updates[block.Repo] = latest
				pretty.InfoPretty(fmt.Sprintf("%s: %s -> %s", block.Repo, block.Rev, latest))
			}

			if len(updates) == 0 {
				pretty.InfoPretty("All repos are up to date")
				return nil
			}
			if dryRun {
				return nil
			}

			if _, err := config.RewriteRevs(path, updates); err != nil {
				return handler.Handle(err)
			}

			pretty.Success(fmt.Sprintf("Updated %s", path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report available updates without rewriting the manifest")

	return cmd
}

// latestTag returns the highest version-shaped tag, or "" when no tag
// looks like a version.
func latestTag(tags []string) string {
	var best string
	var bestParts []int
	for _, tag := range tags {
		parts, ok := versionParts(tag)
		if !ok {
			continue
		}
		if best == "" || compareParts(parts, bestParts) > 0 {
			best = tag
			bestParts = parts
		}
	}
	return best
}

func versionParts(tag string) ([]int, bool) {
	s := strings.TrimPrefix(strings.TrimPrefix(tag, "v"), "V")
	// pre-release tags are skipped; a pinned rev should be a release
	if strings.ContainsAny(s, "-+") {
		return nil, false
	}
	var parts []int
	for _, piece := range strings.Split(s, ".") {
		n, err := strconv.Atoi(piece)
		if err != nil {
			return nil, false
		}
		parts = append(parts, n)
	}
	return parts, len(parts) > 0
}

func compareParts(a, b []int) int {
	for i := 0; i < len(a) || i < len(b); i++ {
		var av, bv int
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av > bv {
				return 1
			}
			return -1
		}
	}
	return 0
}
