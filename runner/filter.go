package runner

import (
	"github.com/grovetools/hooks/errors"
	"github.com/moby/patternmatcher"
)

// FileFilter narrows a candidate file set to the files one hook should
// receive: files matching the inclusion pattern (if any) minus files
// matching the global and per-hook exclusion patterns. Patterns use
// dockerignore syntax, including "**".
type FileFilter struct {
	include *patternmatcher.PatternMatcher
	exclude *patternmatcher.PatternMatcher
}

// NewFileFilter compiles a filter from an inclusion pattern and a set
// of exclusion patterns. Empty patterns are ignored.
func NewFileFilter(include string, excludes ...string) (*FileFilter, error) {
	f := &FileFilter{}

	if include != "" {
		pm, err := patternmatcher.New([]string{include})
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodePatternInvalid, "inclusion pattern does not compile").
				WithDetail("pattern", include)
		}
		f.include = pm
	}

	var nonEmpty []string
	for _, pattern := range excludes {
		if pattern != "" {
			nonEmpty = append(nonEmpty, pattern)
		}
	}
	if len(nonEmpty) > 0 {
		pm, err := patternmatcher.New(nonEmpty)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodePatternInvalid, "exclusion pattern does not compile").
				WithDetail("patterns", nonEmpty)
		}
		f.exclude = pm
	}

	return f, nil
}

// Apply returns the files that pass the filter, preserving order.
func (f *FileFilter) Apply(files []string) ([]string, error) {
	var kept []string
	for _, file := range files {
		ok, err := f.Matches(file)
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, file)
		}
	}
	return kept, nil
}

// Matches reports whether a single file passes the filter.
func (f *FileFilter) Matches(file string) (bool, error) {
	if f.include != nil {
		ok, err := f.include.MatchesOrParentMatches(file)
		if err != nil {
			return false, errors.Wrap(err, errors.ErrCodePatternInvalid, "inclusion match failed").
				WithDetail("file", file)
		}
		if !ok {
			return false, nil
		}
	}

	if f.exclude != nil {
		ok, err := f.exclude.MatchesOrParentMatches(file)
		if err != nil {
			return false, errors.Wrap(err, errors.ErrCodePatternInvalid, "exclusion match failed").
				WithDetail("file", file)
		}
		if ok {
			return false, nil
		}
	}

	return true, nil
}
