package errors

import (
	"fmt"
	"os/exec"
)

// ConfigNotFound creates a manifest not found error
func ConfigNotFound(path string) *HookError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("hook manifest not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid manifest error
func ConfigInvalid(reason string) *HookError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid hook manifest: %s", reason))
}

// RevInvalid creates an invalid pinned revision error
func RevInvalid(repo, rev string) *HookError {
	return New(ErrCodeRevInvalid,
		fmt.Sprintf("repository '%s' has invalid pinned revision '%s'", repo, rev)).
		WithDetail("repo", repo).
		WithDetail("rev", rev)
}

// HookNotFound creates a hook not found error
func HookNotFound(id, repo string) *HookError {
	return New(ErrCodeHookNotFound, fmt.Sprintf("hook '%s' not found in repository '%s'", id, repo)).
		WithDetail("hook", id).
		WithDetail("repo", repo)
}

// HookFailed creates a hook execution failure error
func HookFailed(id string, exitCode int) *HookError {
	return New(ErrCodeHookFailed, fmt.Sprintf("hook '%s' failed with exit code %d", id, exitCode)).
		WithDetail("hook", id).
		WithDetail("exitCode", exitCode)
}

// LanguageUnsupported creates an unsupported hook language error
func LanguageUnsupported(id, language string) *HookError {
	return New(ErrCodeHookLanguageUnsupported,
		fmt.Sprintf("hook '%s' declares unsupported language '%s' (supported: system, script)", id, language)).
		WithDetail("hook", id).
		WithDetail("language", language)
}

// StageUnknown creates an unknown execution stage error
func StageUnknown(stage string) *HookError {
	return New(ErrCodeStageUnknown, fmt.Sprintf("unknown execution stage '%s'", stage)).
		WithDetail("stage", stage)
}

// CloneFailed creates a repository clone failure error
func CloneFailed(repo string, err error) *HookError {
	return Wrap(err, ErrCodeCloneFailed, fmt.Sprintf("failed to clone hook repository '%s'", repo)).
		WithDetail("repo", repo)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *HookError {
	hookErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		hookErr = hookErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return hookErr
}

// NotARepository creates a not-a-git-repository error
func NotARepository(dir string) *HookError {
	return New(ErrCodeNotARepository, fmt.Sprintf("not inside a git repository: %s", dir)).
		WithDetail("dir", dir)
}
