package testutil

import (
	"context"
	"os/exec"
)

// ScriptExecutor is a command.Executor that substitutes shell scripts
// for selected command names, so runner tests do not depend on real
// tools being installed. Unmapped commands run normally.
type ScriptExecutor struct {
	// Scripts maps a command name to the shell script run in its place.
	// The original arguments are forwarded as positional parameters.
	Scripts map[string]string
}

func (e *ScriptExecutor) Command(name string, args ...string) *exec.Cmd {
	if script, ok := e.Scripts[name]; ok {
		return exec.Command("sh", append([]string{"-c", script, name}, args...)...)
	}
	return exec.Command(name, args...)
}

func (e *ScriptExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	if script, ok := e.Scripts[name]; ok {
		return exec.CommandContext(ctx, "sh", append([]string{"-c", script, name}, args...)...)
	}
	return exec.CommandContext(ctx, name, args...)
}
