package runner

import (
	"fmt"
	"strings"

	"github.com/grovetools/hooks/config"
)

// builtinFunc is a manifest hygiene check shipped with grove-hooks.
// It receives the manifest, the builtin's own entry, and the full
// tracked file list, and returns its findings and whether it passed.
type builtinFunc func(cfg *config.Config, sel config.SelectedHook, files []string) (string, bool)

// builtinHooks maps builtin hook ids to their implementations. These
// check the manifest itself, not the files it covers; external tools
// stay external.
var builtinHooks = map[string]builtinFunc{
	"check-useless-exclude": checkUselessExclude,
	"check-hooks-apply":     checkHooksApply,
}

// BuiltinIDs returns the ids of the builtin hooks, for documentation
// and validation.
func BuiltinIDs() []string {
	ids := make([]string, 0, len(builtinHooks))
	for id := range builtinHooks {
		ids = append(ids, id)
	}
	return ids
}

// checkUselessExclude flags exclusion patterns that do not exclude
// anything from the files their hook would otherwise receive.
func checkUselessExclude(cfg *config.Config, _ config.SelectedHook, files []string) (string, bool) {
	var findings []string

	for i := range cfg.Repos {
		repo := &cfg.Repos[i]
		if repo.Repo == config.RepoBuiltin {
			continue
		}
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			if hook.Exclude == "" {
				continue
			}

			included, err := includedFiles(hook, files)
			if err != nil {
				findings = append(findings, err.Error())
				continue
			}

			excludeFilter, err := NewFileFilter("", hook.Exclude)
			if err != nil {
				findings = append(findings, err.Error())
				continue
			}

			excludesSomething := false
			for _, file := range included {
				ok, err := excludeFilter.Matches(file)
				if err != nil {
					break
				}
				if !ok {
					excludesSomething = true
					break
				}
			}

			if !excludesSomething {
				findings = append(findings,
					fmt.Sprintf("hook '%s': exclude pattern '%s' matches no tracked file the hook covers", hook.ID, hook.Exclude))
			}
		}
	}

	return strings.Join(findings, "\n"), len(findings) == 0
}

// checkHooksApply flags hooks whose file set is empty for the whole
// tree, meaning they would never run.
func checkHooksApply(cfg *config.Config, _ config.SelectedHook, files []string) (string, bool) {
	var findings []string

	for i := range cfg.Repos {
		repo := &cfg.Repos[i]
		if repo.Repo == config.RepoBuiltin {
			continue
		}
		for j := range repo.Hooks {
			hook := &repo.Hooks[j]
			if hook.AlwaysRun {
				continue
			}

			filter, err := NewFileFilter(hook.Files, cfg.Exclude, hook.Exclude)
			if err != nil {
				findings = append(findings, err.Error())
				continue
			}

			kept, err := filter.Apply(files)
			if err != nil {
				findings = append(findings, err.Error())
				continue
			}

			if len(kept) == 0 {
				findings = append(findings,
					fmt.Sprintf("hook '%s' does not apply to any file in the repository", hook.ID))
			}
		}
	}

	return strings.Join(findings, "\n"), len(findings) == 0
}

// includedFiles applies only the hook's inclusion pattern.
func includedFiles(hook *config.Hook, files []string) ([]string, error) {
	filter, err := NewFileFilter(hook.Files)
	if err != nil {
		return nil, err
	}
	return filter.Apply(files)
}
