package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/grovetools/hooks/command"
	"github.com/grovetools/hooks/errors"
)

// Repository runs git plumbing commands against a single work tree.
type Repository struct {
	dir      string
	builder  *command.SafeBuilder
	executor command.Executor
}

// NewRepository creates a Repository rooted at dir.
func NewRepository(dir string) *Repository {
	return NewRepositoryWithExecutor(dir, &command.RealExecutor{})
}

// NewRepositoryWithExecutor creates a Repository with a custom command executor.
func NewRepositoryWithExecutor(dir string, exec command.Executor) *Repository {
	return &Repository{
		dir:      dir,
		builder:  command.NewSafeBuilderWithExecutor(exec),
		executor: exec,
	}
}

// Dir returns the directory the repository was opened at.
func (r *Repository) Dir() string {
	return r.dir
}

// Root returns the top-level directory of the work tree.
func (r *Repository) Root(ctx context.Context) (string, error) {
	out, err := r.output(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errors.NotARepository(r.dir)
	}
	return strings.TrimSpace(out), nil
}

// IsInsideWorkTree reports whether dir is inside a git work tree.
func (r *Repository) IsInsideWorkTree(ctx context.Context) bool {
	out, err := r.output(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// StagedFiles lists the files staged for commit, relative to the work
// tree root. Deleted files are omitted since hooks cannot process them.
func (r *Repository) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "diff", "--cached", "--name-only", "--diff-filter=ACMRT")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to list staged files")
	}
	return splitLines(out), nil
}

// TrackedFiles lists every file tracked in the index, relative to the
// work tree root.
func (r *Repository) TrackedFiles(ctx context.Context) ([]string, error) {
	out, err := r.output(ctx, "ls-files")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to list tracked files")
	}
	return splitLines(out), nil
}

// CurrentBranch returns the abbreviated name of the checked-out branch.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.output(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeCommandFailed, "failed to get current branch")
	}
	return strings.TrimSpace(out), nil
}

// LsRemoteTags lists tag names published by a remote repository,
// without cloning it.
func (r *Repository) LsRemoteTags(ctx context.Context, url string) ([]string, error) {
	if err := r.builder.Validate("repoURL", url); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "refusing to query remote")
	}

	out, err := r.output(ctx, "ls-remote", "--tags", "--refs", url)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCommandFailed,
			fmt.Sprintf("failed to list tags for '%s'", url)).
			WithDetail("repo", url)
	}

	var tags []string
	for _, line := range splitLines(out) {
		// Each line is "<sha>\trefs/tags/<name>"
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		tags = append(tags, strings.TrimPrefix(fields[1], "refs/tags/"))
	}
	return tags, nil
}

// output runs a git subcommand in the repository directory and returns stdout.
func (r *Repository) output(ctx context.Context, args ...string) (string, error) {
	cmd, err := r.builder.Build(ctx, "git", args...)
	if err != nil {
		return "", err
	}

	execCmd := cmd.Exec()
	execCmd.Dir = r.dir
	out, err := execCmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// splitLines splits command output into trimmed, non-empty lines.
func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
