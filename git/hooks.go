package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

// hookStubTemplate is the script installed into .git/hooks/<stage>.
// The stub delegates entirely to the grove-hooks binary; the manifest
// decides what actually runs.
const hookStubTemplate = `#!/bin/sh
# grove-hooks git hook - {{.Stage}}
# Auto-generated, do not edit directly

HOOKS_BIN="{{.Binary}}"

if ! command -v "$HOOKS_BIN" >/dev/null 2>&1; then
    echo "grove-hooks not found. Skipping {{.Stage}} hook."
    exit 0
fi

cd "$(git rev-parse --show-toplevel)" || exit 1
exec "$HOOKS_BIN" run --hook-stage {{.Stage}}{{if .PassesCommitMsgFile}} --commit-msg-file "$1"{{end}}
`

const hookMarker = "grove-hooks git hook"

// backupSuffix is appended to pre-existing foreign hooks before we
// replace them, and consulted again on uninstall.
const backupSuffix = ".pre-grove-hooks"

// HookManager installs and removes grove-hooks stubs in .git/hooks.
type HookManager struct {
	binary string
}

// NewHookManager creates a new hook manager. An empty binary name
// defaults to "grove-hooks" resolved from PATH.
func NewHookManager(binary string) *HookManager {
	if binary == "" {
		binary = "grove-hooks"
	}
	return &HookManager{
		binary: binary,
	}
}

// Install writes hook stubs for the given stages into the repository's
// .git/hooks directory. Existing foreign hooks are backed up first.
func (m *HookManager) Install(ctx context.Context, repoPath string, stages []string) error {
	hooksDir := filepath.Join(repoPath, ".git", "hooks")
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return fmt.Errorf("create hooks directory: %w", err)
	}

	for _, stage := range stages {
		if err := m.installStub(hooksDir, stage); err != nil {
			return fmt.Errorf("install %s hook: %w", stage, err)
		}
	}

	return nil
}

// Uninstall removes grove-hooks stubs for the given stages and restores
// any backed-up foreign hooks.
func (m *HookManager) Uninstall(ctx context.Context, repoPath string, stages []string) error {
	hooksDir := filepath.Join(repoPath, ".git", "hooks")

	for _, stage := range stages {
		hookPath := filepath.Join(hooksDir, stage)

		// Only remove hooks we own
		if !m.isOwnHook(hookPath) {
			continue
		}

		if err := os.Remove(hookPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s hook: %w", stage, err)
		}

		// Restore a backed-up foreign hook if one exists
		backupPath := hookPath + backupSuffix
		if _, err := os.Stat(backupPath); err == nil {
			if err := os.Rename(backupPath, hookPath); err != nil {
				return fmt.Errorf("restore %s hook backup: %w", stage, err)
			}
		}
	}

	return nil
}

// installStub installs a single stage's hook stub
func (m *HookManager) installStub(hooksDir, stage string) error {
	hookPath := filepath.Join(hooksDir, stage)

	// Check if hook already exists
	if _, err := os.Stat(hookPath); err == nil {
		if !m.isOwnHook(hookPath) {
			// Backup existing foreign hook
			backupPath := hookPath + backupSuffix
			if err := os.Rename(hookPath, backupPath); err != nil {
				return fmt.Errorf("backup existing hook: %w", err)
			}
		}
	}

	tmpl, err := template.New(stage).Parse(hookStubTemplate)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	data := struct {
		Stage               string
		Binary              string
		PassesCommitMsgFile bool
	}{
		Stage:               stage,
		Binary:              m.binary,
		PassesCommitMsgFile: stage == "commit-msg",
	}

	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	// Write hook file with executable permissions
	// #nosec G306 - Git hooks need to be executable
	if err := os.WriteFile(hookPath, buf.Bytes(), 0755); err != nil {
		return fmt.Errorf("write hook file: %w", err)
	}

	return nil
}

// isOwnHook checks if a hook file is managed by grove-hooks
func (m *HookManager) isOwnHook(hookPath string) bool {
	content, err := os.ReadFile(hookPath)
	if err != nil {
		return false
	}
	return bytes.Contains(content, []byte(hookMarker))
}
