package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/hooks/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No hook manifest found. Run 'grove-hooks sample-config > .grove-hooks.yaml' to create one.\n")
		return err

	case errors.ErrCodeHookNotFound:
		if hookErr, ok := err.(*errors.HookError); ok {
			if stage, hasStage := hookErr.Details["stage"]; hasStage {
				fmt.Fprintf(os.Stderr, "❌ Hook '%s' does not participate in stage '%s'\n",
					hookErr.Details["hook"], stage)
			} else {
				fmt.Fprintf(os.Stderr, "❌ Hook '%s' not found in repository '%s'\n",
					hookErr.Details["hook"], hookErr.Details["repo"])
			}
			fmt.Fprintf(os.Stderr, "Run 'grove-hooks list' to see configured hooks.\n")
		}
		return err

	case errors.ErrCodeRevInvalid:
		if hookErr, ok := err.(*errors.HookError); ok {
			fmt.Fprintf(os.Stderr, "❌ Invalid pinned revision '%s'\n", hookErr.Details["rev"])
			fmt.Fprintf(os.Stderr, "Revisions must be version tags (v1.2.3) or hex object ids.\n")
		}
		return err

	case errors.ErrCodeNotARepository:
		fmt.Fprintf(os.Stderr, "❌ Not inside a git repository.\n")
		return err

	case errors.ErrCodeCloneFailed:
		if hookErr, ok := err.(*errors.HookError); ok {
			fmt.Fprintf(os.Stderr, "❌ Failed to clone hook repository '%s'\n", hookErr.Details["repo"])
			fmt.Fprintf(os.Stderr, "Check the repository URL and your network connection.\n")
		}
		return err

	case errors.ErrCodeHookLanguageUnsupported:
		if hookErr, ok := err.(*errors.HookError); ok {
			fmt.Fprintf(os.Stderr, "❌ Hook '%s' uses unsupported language '%s' (supported: system, script)\n",
				hookErr.Details["hook"], hookErr.Details["language"])
		}
		return err

	default:
		// Generic error handling
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if hookErr, ok := err.(*errors.HookError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", hookErr.ToJSON())
			}
		}
		return err
	}
}
