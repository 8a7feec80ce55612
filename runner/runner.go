package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/grovetools/hooks/command"
	"github.com/grovetools/hooks/config"
	"github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/git"
	"github.com/grovetools/hooks/store"
	"github.com/sirupsen/logrus"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	skipStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// lineWidth is the column the status label is aligned to.
const lineWidth = 60

// Options control a single run.
type Options struct {
	// Stage is the execution stage to run (default: pre-commit).
	Stage string

	// HookID restricts the run to a single hook entry.
	HookID string

	// AllFiles runs against every tracked file instead of staged files.
	AllFiles bool

	// Files overrides the candidate file set entirely.
	Files []string

	// CommitMsgFile is the path to the message file for commit-msg runs.
	CommitMsgFile string

	// Verbose shows hook output even on success.
	Verbose bool

	// Timeout bounds each hook invocation. Zero means the default.
	Timeout time.Duration
}

// Runner executes the hooks a manifest selects for an execution stage.
type Runner struct {
	cfg      *config.Config
	repo     *git.Repository
	store    *store.Store
	executor command.Executor
	log      *logrus.Entry
	out      io.Writer
}

// New creates a Runner for the given manifest and repository.
func New(cfg *config.Config, repo *git.Repository, st *store.Store, log *logrus.Entry) *Runner {
	if log == nil {
		log = logrus.NewEntry(logrus.New())
	}
	return &Runner{
		cfg:      cfg,
		repo:     repo,
		store:    st,
		executor: &command.RealExecutor{},
		log:      log,
		out:      os.Stdout,
	}
}

// WithOutput redirects the styled run output.
func (r *Runner) WithOutput(w io.Writer) *Runner {
	r.out = w
	return r
}

// WithExecutor replaces the command executor.
func (r *Runner) WithExecutor(exec command.Executor) *Runner {
	r.executor = exec
	return r
}

// Run executes the hooks selected for the stage and returns a report.
// A failing hook does not return an error; inspect Report.Failed.
func (r *Runner) Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Stage == "" {
		opts.Stage = config.StagePreCommit
	}
	if !config.IsKnownStage(opts.Stage) {
		return nil, errors.StageUnknown(opts.Stage)
	}

	selected := r.cfg.HooksForStage(opts.Stage)
	if opts.HookID != "" {
		var narrowed []config.SelectedHook
		for _, sel := range selected {
			if sel.Hook.ID == opts.HookID {
				narrowed = append(narrowed, sel)
			}
		}
		if len(narrowed) == 0 {
			return nil, errors.New(errors.ErrCodeHookNotFound,
				fmt.Sprintf("no hook '%s' participates in stage '%s'", opts.HookID, opts.Stage)).
				WithDetail("hook", opts.HookID).
				WithDetail("stage", opts.Stage)
		}
		selected = narrowed
	}

	candidates, err := r.candidateFiles(ctx, opts)
	if err != nil {
		return nil, err
	}

	root, err := r.repo.Root(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Stage: opts.Stage}
	start := time.Now()

	for _, sel := range selected {
		result := r.runHook(ctx, root, sel, candidates, opts)
		report.Results = append(report.Results, result)
		r.printResult(result, opts.Verbose || sel.Hook.Verbose)
	}

	report.Duration = time.Since(start)
	return report, nil
}

// candidateFiles determines the file set the stage operates on, before
// per-hook filtering. Paths are relative to the work tree root.
func (r *Runner) candidateFiles(ctx context.Context, opts Options) ([]string, error) {
	if len(opts.Files) > 0 {
		return opts.Files, nil
	}
	if opts.Stage == config.StageCommitMsg {
		if opts.CommitMsgFile == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"commit-msg stage requires --commit-msg-file")
		}
		return []string{opts.CommitMsgFile}, nil
	}
	if opts.AllFiles || opts.Stage != config.StagePreCommit {
		return r.repo.TrackedFiles(ctx)
	}
	return r.repo.StagedFiles(ctx)
}

// runHook resolves and executes a single hook entry.
func (r *Runner) runHook(ctx context.Context, root string, sel config.SelectedHook, candidates []string, opts Options) Result {
	hook := sel.Hook
	result := Result{
		ID:   hook.ID,
		Name: hook.DisplayName(),
		Repo: sel.Repo.Repo,
	}

	start := time.Now()
	defer func() {
		result.Duration = time.Since(start)
	}()

	inv, err := r.resolve(ctx, sel)
	if err != nil {
		result.Status = StatusFailed
		result.Output = err.Error()
		return result
	}
	if inv.name != "" && result.Name == hook.ID && inv.name != hook.ID {
		result.Name = inv.name
	}

	filter, err := NewFileFilter(firstNonEmpty(hook.Files, inv.files), r.cfg.Exclude, hook.Exclude, inv.exclude)
	if err != nil {
		result.Status = StatusFailed
		result.Output = err.Error()
		return result
	}

	files := candidates
	// The commit message file is the payload, not a work tree path;
	// exclusion patterns do not apply to it.
	if opts.Stage != config.StageCommitMsg {
		files, err = filter.Apply(candidates)
		if err != nil {
			result.Status = StatusFailed
			result.Output = err.Error()
			return result
		}
	}
	result.Files = len(files)

	if len(files) == 0 && !hook.AlwaysRun && !inv.alwaysRun {
		result.Status = StatusSkipped
		result.Reason = "no files to check"
		return result
	}

	if inv.builtin != nil {
		// Builtins judge the manifest against the whole work tree, not
		// the stage's candidate set; a partial staged set must not
		// produce findings about hooks the tree does cover.
		tree, err := r.repo.TrackedFiles(ctx)
		if err != nil {
			result.Status = StatusFailed
			result.Output = err.Error()
			return result
		}
		output, ok := inv.builtin(r.cfg, sel, tree)
		result.Output = output
		if ok {
			result.Status = StatusPassed
		} else {
			result.Status = StatusFailed
			result.ExitCode = 1
		}
		return result
	}

	argv := append([]string{}, inv.argv...)
	if r.shouldPassFilenames(hook, inv) {
		argv = append(argv, files...)
	}

	r.log.WithFields(logrus.Fields{
		"hook":  hook.ID,
		"files": len(files),
	}).Debug("Executing hook")

	output, exitCode, err := r.execute(ctx, root, argv, opts.Timeout)
	result.Output = strings.TrimRight(output, "\n")
	result.ExitCode = exitCode

	if err != nil && exitCode == 0 {
		// The command could not be started at all
		result.Status = StatusFailed
		if result.Output == "" {
			result.Output = err.Error()
		}
		return result
	}

	if exitCode != 0 {
		result.Status = StatusFailed
	} else {
		result.Status = StatusPassed
	}
	return result
}

// invocation is a hook entry resolved against its source repository.
type invocation struct {
	argv      []string
	name      string
	files     string
	exclude   string
	alwaysRun bool
	// passFilenames carries the definition-level default when the
	// manifest entry does not set pass_filenames.
	passFilenames *bool
	builtin       builtinFunc
}

// resolve turns a manifest hook entry into something executable.
func (r *Runner) resolve(ctx context.Context, sel config.SelectedHook) (*invocation, error) {
	repo := sel.Repo
	hook := sel.Hook

	switch {
	case repo.Repo == config.RepoLocal:
		if hook.Entry == "" {
			return nil, errors.New(errors.ErrCodeConfigValidation,
				fmt.Sprintf("local hook '%s' has no entry", hook.ID))
		}
		if hook.Language != "" && hook.Language != "system" && hook.Language != "script" {
			return nil, errors.LanguageUnsupported(hook.ID, hook.Language)
		}
		// script entries are paths relative to the work tree; the
		// command runs with the work tree as its directory either way.
		argv := append(strings.Fields(hook.Entry), hook.Args...)
		return &invocation{argv: argv}, nil

	case repo.Repo == config.RepoBuiltin:
		fn, ok := builtinHooks[hook.ID]
		if !ok {
			return nil, errors.HookNotFound(hook.ID, config.RepoBuiltin)
		}
		return &invocation{builtin: fn, alwaysRun: true}, nil

	default:
		cloneDir, err := r.store.Ensure(ctx, repo.Repo, repo.Rev)
		if err != nil {
			return nil, err
		}

		defs, err := store.Definitions(cloneDir)
		if err != nil {
			return nil, err
		}

		def := store.Lookup(defs, hook.ID)
		if def == nil {
			return nil, errors.HookNotFound(hook.ID, repo.Repo)
		}

		entry := def.Entry
		switch def.Language {
		case "", "system":
			// entry resolved from PATH
		case "script":
			entry = filepath.Join(cloneDir, entry)
		default:
			return nil, errors.LanguageUnsupported(hook.ID, def.Language)
		}

		argv := strings.Fields(entry)
		argv = append(argv, def.Args...)
		argv = append(argv, hook.Args...)

		return &invocation{
			argv:          argv,
			name:          def.Name,
			files:         def.Files,
			exclude:       def.Exclude,
			alwaysRun:     def.AlwaysRun,
			passFilenames: def.PassFilenames,
		}, nil
	}
}

// shouldPassFilenames merges the manifest setting with the definition default.
func (r *Runner) shouldPassFilenames(hook *config.Hook, inv *invocation) bool {
	if hook.PassFilenames != nil {
		return *hook.PassFilenames
	}
	if inv.passFilenames != nil {
		return *inv.passFilenames
	}
	return true
}

// execute runs argv in dir and returns combined output and exit code.
func (r *Runner) execute(ctx context.Context, dir string, argv []string, timeout time.Duration) (string, int, error) {
	builder := command.NewSafeBuilderWithExecutor(r.executor)
	cmd, err := builder.Build(ctx, argv[0], argv[1:]...)
	if err != nil {
		return "", 0, err
	}
	if timeout > 0 {
		cmd = cmd.WithTimeout(timeout)
	}

	execCmd := cmd.Exec()
	execCmd.Dir = dir
	execCmd.Env = append(os.Environ(), "GROVE_HOOKS=1")

	output, err := execCmd.CombinedOutput()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(output), exitErr.ExitCode(), nil
		}
		return string(output), 0, errors.CommandFailed(argv[0], err)
	}
	return string(output), 0, nil
}

// printResult renders one dotted status line, plus output when relevant.
func (r *Runner) printResult(result Result, verbose bool) {
	label := result.Name
	if len(label) > lineWidth-10 {
		label = label[:lineWidth-10]
	}
	dots := strings.Repeat(".", lineWidth-len(label))

	var status string
	switch result.Status {
	case StatusPassed:
		status = passStyle.Render("Passed")
	case StatusFailed:
		status = failStyle.Render("Failed")
	case StatusSkipped:
		status = skipStyle.Render("Skipped")
	}

	fmt.Fprintf(r.out, "%s%s%s\n", label, dots, status)

	if result.Status == StatusSkipped && result.Reason != "" {
		fmt.Fprintf(r.out, "  %s\n", skipStyle.Render("("+result.Reason+")"))
	}

	if result.Output != "" && (result.Status == StatusFailed || verbose) {
		for _, line := range strings.Split(result.Output, "\n") {
			fmt.Fprintf(r.out, "  %s\n", line)
		}
	}
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
