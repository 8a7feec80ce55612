package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/hooks/command"
	"github.com/grovetools/hooks/config"
	"github.com/grovetools/hooks/errors"
	"github.com/sirupsen/logrus"
)

// readyMarker is written into a clone once it has been checked out at
// its pinned revision. Its presence makes Ensure a no-op.
const readyMarker = ".grove-hooks-ready"

// Store materializes remote hook repositories at pinned revisions
// under a cache directory. Clones are keyed by (url, rev), so a rev
// bump produces a fresh clone and never mutates an existing one.
type Store struct {
	root    string
	builder *command.SafeBuilder
	log     *logrus.Entry
}

// New creates a Store rooted at <cacheDir>/repos.
func New(cacheDir string, log *logrus.Entry) *Store {
	return NewWithExecutor(cacheDir, log, &command.RealExecutor{})
}

// NewWithExecutor creates a Store with a custom command executor.
func NewWithExecutor(cacheDir string, log *logrus.Entry, exec command.Executor) *Store {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	return &Store{
		root:    filepath.Join(cacheDir, "repos"),
		builder: command.NewSafeBuilderWithExecutor(exec),
		log:     log,
	}
}

// Root returns the directory clones live under.
func (s *Store) Root() string {
	return s.root
}

// Dir returns the clone directory for a (url, rev) pair without
// touching the filesystem.
func (s *Store) Dir(url, rev string) string {
	return filepath.Join(s.root, cloneKey(url, rev))
}

// Ensure guarantees a clone of url checked out at rev exists in the
// store and returns its directory. It is idempotent and safe to re-run
// after a partial failure.
func (s *Store) Ensure(ctx context.Context, url, rev string) (string, error) {
	if err := s.builder.Validate("repoURL", url); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "refusing to clone").
			WithDetail("repo", url)
	}
	if err := s.builder.Validate("gitRef", rev); err != nil {
		return "", errors.RevInvalid(url, rev)
	}

	dir := s.Dir(url, rev)
	if _, err := os.Stat(filepath.Join(dir, readyMarker)); err == nil {
		return dir, nil
	}

	// A directory without the marker is a partial clone from an
	// interrupted run. Start over.
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return "", errors.Wrap(err, errors.ErrCodeStoreCorrupt, "failed to remove partial clone").
				WithDetail("dir", dir)
		}
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStoreCorrupt, "failed to create store directory").
			WithDetail("dir", s.root)
	}

	s.log.WithFields(logrus.Fields{"repo": url, "rev": rev}).Info("Cloning hook repository")

	if err := s.git(ctx, s.root, "clone", "--quiet", url, dir); err != nil {
		return "", errors.CloneFailed(url, err)
	}

	if err := s.git(ctx, dir, "checkout", "--quiet", rev); err != nil {
		// The rev may be unreachable from the default branch tip
		if fetchErr := s.git(ctx, dir, "fetch", "--quiet", "--tags", "origin"); fetchErr == nil {
			err = s.git(ctx, dir, "checkout", "--quiet", rev)
		}
		if err != nil {
			return "", errors.Wrap(err, errors.ErrCodeCheckoutFailed,
				fmt.Sprintf("failed to check out '%s' at revision '%s'", url, rev)).
				WithDetail("repo", url).
				WithDetail("rev", rev)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, readyMarker), []byte(url+"@"+rev+"\n"), 0644); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStoreCorrupt, "failed to mark clone ready").
			WithDetail("dir", dir)
	}

	return dir, nil
}

// GC removes cached clones not referenced by the given manifest and
// returns the directories it deleted.
func (s *Store) GC(cfg *config.Config) ([]string, error) {
	referenced := make(map[string]bool)
	for i := range cfg.Repos {
		repo := &cfg.Repos[i]
		if repo.IsRemote() {
			referenced[cloneKey(repo.Repo, repo.Rev)] = true
		}
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrCodeStoreCorrupt, "failed to read store directory").
			WithDetail("dir", s.root)
	}

	var removed []string
	for _, entry := range entries {
		if !entry.IsDir() || referenced[entry.Name()] {
			continue
		}
		dir := filepath.Join(s.root, entry.Name())
		if err := os.RemoveAll(dir); err != nil {
			return removed, errors.Wrap(err, errors.ErrCodeStoreCorrupt, "failed to remove clone").
				WithDetail("dir", dir)
		}
		s.log.WithField("dir", dir).Debug("Removed unreferenced clone")
		removed = append(removed, dir)
	}

	return removed, nil
}

// git runs a git subcommand in the given directory.
func (s *Store) git(ctx context.Context, dir string, args ...string) error {
	cmd, err := s.builder.Build(ctx, "git", args...)
	if err != nil {
		return err
	}

	execCmd := cmd.Exec()
	execCmd.Dir = dir
	return execCmd.Run()
}

// cloneKey derives a stable directory name for a (url, rev) pair.
func cloneKey(url, rev string) string {
	sum := sha256.Sum256([]byte(url + "@" + rev))
	return hex.EncodeToString(sum[:])[:16]
}
