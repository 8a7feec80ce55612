package config

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

//go:generate go run ../tools/schema-generator/

// Repo kinds. A repository block either points at a remote source URL
// or uses one of these special kinds.
const (
	// RepoLocal marks hooks defined inline in the manifest, executed
	// from the consuming repository itself.
	RepoLocal = "local"
	// RepoBuiltin marks manifest hygiene checks shipped with grove-hooks.
	RepoBuiltin = "builtin"
)

// Execution stages. A hook runs at one or more of these points in the
// git workflow.
const (
	StagePreCommit    = "pre-commit"
	StageCommitMsg    = "commit-msg"
	StagePrePush      = "pre-push"
	StagePostCheckout = "post-checkout"
	StagePostMerge    = "post-merge"
)

// KnownStages lists every execution stage grove-hooks can install and run.
var KnownStages = []string{
	StagePreCommit,
	StageCommitMsg,
	StagePrePush,
	StagePostCheckout,
	StagePostMerge,
}

// IsKnownStage reports whether stage is one of the recognized execution stages.
func IsKnownStage(stage string) bool {
	for _, s := range KnownStages {
		if s == stage {
			return true
		}
	}
	return false
}

// Config is the root of a hook manifest (.grove-hooks.yaml).
type Config struct {
	// Repos is the ordered list of hook repository blocks.
	Repos []Repo `yaml:"repos" json:"repos" toml:"repos" jsonschema:"required,description=Ordered list of hook repository blocks"`

	// DefaultStages applies to hooks that declare no stages of their own.
	DefaultStages []string `yaml:"default_stages,omitempty" json:"default_stages,omitempty" toml:"default_stages,omitempty" jsonschema:"description=Stages used by hooks that declare none (default: pre-commit)"`

	// Exclude is a global exclusion pattern applied to every hook's file set.
	Exclude string `yaml:"exclude,omitempty" json:"exclude,omitempty" toml:"exclude,omitempty" jsonschema:"description=Global exclusion pattern applied before per-hook patterns"`

	// MinimumVersion rejects the manifest when the running grove-hooks
	// binary is older than the given version.
	MinimumVersion string `yaml:"minimum_version,omitempty" json:"minimum_version,omitempty" toml:"minimum_version,omitempty" jsonschema:"description=Minimum grove-hooks version able to run this manifest"`

	// Extensions holds unknown top-level keys so ecosystem tools can
	// attach their own sections without breaking validation.
	Extensions map[string]interface{} `yaml:",inline" json:"-" toml:"-" jsonschema:"-"`
}

// Repo is a single repository block: a hook source pinned to a revision.
type Repo struct {
	// Repo is the source URL, or one of the special kinds "local" / "builtin".
	Repo string `yaml:"repo" json:"repo" toml:"repo" jsonschema:"required,description=Hook source URL or the special kinds 'local' and 'builtin'"`

	// Rev is the pinned revision (tag or object id). Required for remote
	// sources, forbidden for local and builtin blocks.
	Rev string `yaml:"rev,omitempty" json:"rev,omitempty" toml:"rev,omitempty" jsonschema:"description=Pinned revision: a version tag or a hex object id"`

	// Hooks is the ordered list of hook entries selected from this source.
	Hooks []Hook `yaml:"hooks" json:"hooks" toml:"hooks" jsonschema:"required,description=Ordered hook entries selected from this source"`
}

// IsRemote reports whether the block points at a remote source URL.
func (r *Repo) IsRemote() bool {
	return r.Repo != RepoLocal && r.Repo != RepoBuiltin
}

// Hook is a single hook entry within a repository block.
type Hook struct {
	// ID selects a hook definition from the source repository, or names
	// an inline hook for local blocks.
	ID string `yaml:"id" json:"id" toml:"id" jsonschema:"required,description=Hook identifier"`

	// Name overrides the display name.
	Name string `yaml:"name,omitempty" json:"name,omitempty" toml:"name,omitempty" jsonschema:"description=Display name override"`

	// Entry is the command to execute. Required for local hooks,
	// ignored for remote hooks (their definitions supply it).
	Entry string `yaml:"entry,omitempty" json:"entry,omitempty" toml:"entry,omitempty" jsonschema:"description=Command to execute (local hooks only)"`

	// Language describes how the entry is executed: "system" (on PATH)
	// or "script" (path relative to the hook repository).
	Language string `yaml:"language,omitempty" json:"language,omitempty" toml:"language,omitempty" jsonschema:"description=Execution language: system or script"`

	// Args are extra arguments passed to the entry before filenames.
	Args []string `yaml:"args,omitempty" json:"args,omitempty" toml:"args,omitempty" jsonschema:"description=Arguments passed to the underlying tool"`

	// Files is an inclusion pattern; only matching files are passed.
	Files string `yaml:"files,omitempty" json:"files,omitempty" toml:"files,omitempty" jsonschema:"description=Inclusion pattern for candidate files"`

	// Exclude is an exclusion pattern; matching files are skipped.
	Exclude string `yaml:"exclude,omitempty" json:"exclude,omitempty" toml:"exclude,omitempty" jsonschema:"description=Exclusion pattern for files this hook must skip"`

	// Stages restricts the hook to the given execution stages.
	Stages []string `yaml:"stages,omitempty" json:"stages,omitempty" toml:"stages,omitempty" jsonschema:"description=Execution stages this hook runs at"`

	// AlwaysRun executes the hook even when its file set is empty.
	AlwaysRun bool `yaml:"always_run,omitempty" json:"always_run,omitempty" toml:"always_run,omitempty" jsonschema:"description=Run even when no files match"`

	// PassFilenames controls whether matched filenames are appended to
	// the invocation. Defaults to true.
	PassFilenames *bool `yaml:"pass_filenames,omitempty" json:"pass_filenames,omitempty" toml:"pass_filenames,omitempty" jsonschema:"description=Append matched filenames to the invocation (default true)"`

	// Verbose shows the hook's output even on success.
	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty" toml:"verbose,omitempty" jsonschema:"description=Show output even when the hook passes"`
}

// DisplayName returns the name to show in run output.
func (h *Hook) DisplayName() string {
	if h.Name != "" {
		return h.Name
	}
	return h.ID
}

// ShouldPassFilenames reports whether filenames are appended to the entry.
func (h *Hook) ShouldPassFilenames() bool {
	return h.PassFilenames == nil || *h.PassFilenames
}

// StagesOrDefault returns the hook's stages, falling back to the
// manifest default stages.
func (h *Hook) StagesOrDefault(defaults []string) []string {
	if len(h.Stages) > 0 {
		return h.Stages
	}
	return defaults
}

// SetDefaults fills in defaults for optional manifest fields.
func (c *Config) SetDefaults() {
	if len(c.DefaultStages) == 0 {
		c.DefaultStages = []string{StagePreCommit}
	}
	for i := range c.Repos {
		c.Repos[i].Repo = strings.TrimSpace(c.Repos[i].Repo)
	}
}

// HooksForStage returns every (repo, hook) pair participating in the
// given stage, in manifest order.
func (c *Config) HooksForStage(stage string) []SelectedHook {
	var selected []SelectedHook
	for i := range c.Repos {
		repo := &c.Repos[i]
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			for _, s := range hook.StagesOrDefault(c.DefaultStages) {
				if s == stage {
					selected = append(selected, SelectedHook{Repo: repo, Hook: hook})
					break
				}
			}
		}
	}
	return selected
}

// FindHook returns the first hook entry with the given id, or nil.
func (c *Config) FindHook(id string) *SelectedHook {
	for i := range c.Repos {
		repo := &c.Repos[i]
		for j := range repo.Hooks {
			if repo.Hooks[j].ID == id {
				return &SelectedHook{Repo: repo, Hook: &repo.Hooks[j]}
			}
		}
	}
	return nil
}

// SelectedHook pairs a hook entry with the repository block it came from.
type SelectedHook struct {
	Repo *Repo
	Hook *Hook
}

// UnmarshalExtension decodes a specific extension's section from the
// manifest into a typed struct. Ecosystem tools store their own keys
// at the top level; this gives them typed access.
//
// Example:
//
//	var ci CIConfig
//	err := cfg.UnmarshalExtension("ci", &ci)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	raw, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(raw); err != nil {
		return fmt.Errorf("failed to decode extension '%s': %w", key, err)
	}

	return nil
}
