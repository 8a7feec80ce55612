package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/grovetools/hooks/errors"
	"github.com/moby/patternmatcher"
)

var (
	hookIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

	// A pinned revision is a version tag (optionally v-prefixed, with
	// optional pre-release / build suffix) or a hex object id.
	revTagRegex = regexp.MustCompile(`^[vV]?\d+(\.\d+)*([.+-][0-9A-Za-z.+-]+)?$`)
	revShaRegex = regexp.MustCompile(`^[0-9a-f]{7,40}$`)
)

// Validate checks if the manifest is semantically valid
func (c *Config) Validate() error {
	if len(c.Repos) == 0 {
		return errors.New(errors.ErrCodeConfigValidation, "manifest must declare at least one repository block")
	}

	for _, stage := range c.DefaultStages {
		if !IsKnownStage(stage) {
			return errors.StageUnknown(stage).WithDetail("field", "default_stages")
		}
	}

	if err := validatePattern("exclude", c.Exclude); err != nil {
		return err
	}

	for i := range c.Repos {
		repo := &c.Repos[i]
		if err := validateRepo(repo); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation, fmt.Sprintf("invalid repository block '%s'", repo.Repo)).
				WithDetail("repo", repo.Repo)
		}
	}

	return nil
}

func validateRepo(repo *Repo) error {
	if repo.Repo == "" {
		return errors.New(errors.ErrCodeConfigValidation, "repository source cannot be empty")
	}

	if repo.IsRemote() {
		if err := ValidateRev(repo.Rev); err != nil {
			return errors.RevInvalid(repo.Repo, repo.Rev)
		}
	} else if repo.Rev != "" {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("'%s' repository blocks must not pin a revision", repo.Repo)).
			WithDetail("rev", repo.Rev)
	}

	if len(repo.Hooks) == 0 {
		return errors.New(errors.ErrCodeConfigValidation, "repository block must select at least one hook")
	}

	for i := range repo.Hooks {
		hook := &repo.Hooks[i]
		if err := validateHook(repo, hook); err != nil {
			return err
		}
	}

	return nil
}

func validateHook(repo *Repo, hook *Hook) error {
	if hook.ID == "" {
		return errors.New(errors.ErrCodeConfigValidation, "hook id cannot be empty")
	}
	if !hookIDRegex.MatchString(hook.ID) {
		return errors.New(errors.ErrCodeConfigValidation,
			"hook id must start with a letter or digit and contain only letters, digits, dots, underscores, and hyphens").
			WithDetail("hook", hook.ID)
	}

	if repo.Repo == RepoLocal {
		if hook.Entry == "" {
			return errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("local hook '%s' must declare an entry", hook.ID)).
				WithDetail("hook", hook.ID)
		}
		if hook.Language != "" && hook.Language != "system" && hook.Language != "script" {
			return errors.LanguageUnsupported(hook.ID, hook.Language)
		}
	}

	for _, stage := range hook.Stages {
		if !IsKnownStage(stage) {
			return errors.StageUnknown(stage).WithDetail("hook", hook.ID)
		}
	}

	if err := validatePattern(fmt.Sprintf("hook '%s' files", hook.ID), hook.Files); err != nil {
		return err
	}
	if err := validatePattern(fmt.Sprintf("hook '%s' exclude", hook.ID), hook.Exclude); err != nil {
		return err
	}

	return nil
}

// ValidateRev checks that a pinned revision is a version tag or object id.
func ValidateRev(rev string) error {
	if rev == "" {
		return errors.New(errors.ErrCodeRevInvalid, "remote repository blocks must pin a revision")
	}
	if !revTagRegex.MatchString(rev) && !revShaRegex.MatchString(rev) {
		return errors.New(errors.ErrCodeRevInvalid,
			fmt.Sprintf("revision '%s' is not a version tag or hex object id", rev)).
			WithDetail("rev", rev)
	}
	return nil
}

// CheckMinimumVersion enforces the manifest's minimum_version gate
// against the running binary version. Non-release builds ("dev") and
// unset gates always pass.
func (c *Config) CheckMinimumVersion(current string) error {
	if c.MinimumVersion == "" {
		return nil
	}

	min, ok := parseVersionString(c.MinimumVersion)
	if !ok {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("minimum_version '%s' is not a version", c.MinimumVersion)).
			WithDetail("minimum_version", c.MinimumVersion)
	}

	cur, ok := parseVersionString(current)
	if !ok {
		return nil
	}

	if compareVersions(cur, min) < 0 {
		return errors.New(errors.ErrCodeConfigValidation,
			fmt.Sprintf("manifest requires grove-hooks >= %s, this is %s", c.MinimumVersion, current)).
			WithDetail("minimum_version", c.MinimumVersion).
			WithDetail("current", current)
	}
	return nil
}

// parseVersionString parses "v1.2.3" or "1.2.3" into numeric parts,
// ignoring any pre-release or build suffix.
func parseVersionString(v string) ([]int, bool) {
	v = strings.TrimPrefix(strings.TrimPrefix(v, "v"), "V")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}

	var parts []int
	for _, piece := range strings.Split(v, ".") {
		n, err := strconv.Atoi(piece)
		if err != nil {
			return nil, false
		}
		parts = append(parts, n)
	}
	return parts, len(parts) > 0
}

func compareVersions(a, b []int) int {
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

// validatePattern checks that an exclusion/inclusion pattern compiles.
func validatePattern(field, pattern string) error {
	if pattern == "" {
		return nil
	}
	if _, err := patternmatcher.New([]string{pattern}); err != nil {
		return errors.Wrap(err, errors.ErrCodePatternInvalid,
			fmt.Sprintf("%s pattern does not compile", field)).
			WithDetail("pattern", pattern)
	}
	return nil
}

// Warning is a non-fatal finding about a manifest.
type Warning struct {
	Repo    string `json:"repo"`
	Hook    string `json:"hook,omitempty"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	if w.Hook != "" {
		return fmt.Sprintf("%s: hook '%s': %s", w.Repo, w.Hook, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Repo, w.Message)
}

// Lint reports redundancies that are not errors: duplicate hook ids
// within a repository block, and stage lists that repeat a stage.
func (c *Config) Lint() []Warning {
	var warnings []Warning

	for i := range c.Repos {
		repo := &c.Repos[i]

		seen := make(map[string]bool)
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			if seen[hook.ID] {
				warnings = append(warnings, Warning{
					Repo:    repo.Repo,
					Hook:    hook.ID,
					Message: "duplicate hook id within this repository block",
				})
			}
			seen[hook.ID] = true

			stageSeen := make(map[string]bool)
			for _, stage := range hook.Stages {
				if stageSeen[stage] {
					warnings = append(warnings, Warning{
						Repo:    repo.Repo,
						Hook:    hook.ID,
						Message: fmt.Sprintf("stage '%s' listed more than once", stage),
					})
				}
				stageSeen[stage] = true
			}
		}
	}

	return warnings
}
