package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/hooks/config"
	"github.com/grovetools/hooks/errors"
	"github.com/grovetools/hooks/git"
	"github.com/grovetools/hooks/logging"
	"github.com/grovetools/hooks/store"
	"github.com/grovetools/hooks/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, cfg *config.Config, workTree string) (*Runner, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	st := store.New(t.TempDir(), logging.NewLogger("store-test"))
	r := New(cfg, git.NewRepository(workTree), st, logging.NewLogger("runner-test")).WithOutput(&out)
	return r, &out
}

func TestRunLocalHooks(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: config.RepoLocal,
				Hooks: []config.Hook{
					{ID: "ok", Entry: "true", AlwaysRun: true},
					{ID: "bad", Entry: "false", AlwaysRun: true},
				},
			},
		},
	}
	cfg.SetDefaults()

	r, out := newTestRunner(t, cfg, dir)
	report, err := r.Run(context.Background(), Options{AllFiles: true})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, StatusPassed, report.Results[0].Status)
	assert.Equal(t, StatusFailed, report.Results[1].Status)
	assert.Equal(t, 1, report.Results[1].ExitCode)
	assert.True(t, report.Failed())

	passed, failed, skipped := report.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 0, skipped)

	assert.Contains(t, out.String(), "ok")
	assert.Contains(t, out.String(), "bad")
}

func TestRunSkipsWhenNoFilesMatch(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: config.RepoLocal,
				Hooks: []config.Hook{
					{ID: "proto-lint", Entry: "false", Files: "*.proto"},
				},
			},
		},
	}
	cfg.SetDefaults()

	r, _ := newTestRunner(t, cfg, dir)
	report, err := r.Run(context.Background(), Options{AllFiles: true})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusSkipped, report.Results[0].Status)
	assert.False(t, report.Failed())
}

func TestRunExcludeFilters(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.CreateCommit(t, dir, "main.go", "package main\n")
	testutil.CreateCommit(t, dir, "vendor/dep.go", "package dep\n")

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: config.RepoLocal,
				Hooks: []config.Hook{
					{ID: "go-files", Entry: "true", Files: "**/*.go", Exclude: "vendor/**"},
				},
			},
		},
	}
	cfg.SetDefaults()

	r, _ := newTestRunner(t, cfg, dir)
	report, err := r.Run(context.Background(), Options{AllFiles: true})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusPassed, report.Results[0].Status)
	assert.Equal(t, 1, report.Results[0].Files)
}

func TestRunStagedFilesOnly(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.StageFile(t, dir, "staged.txt", "content\n")

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: config.RepoLocal,
				Hooks: []config.Hook{
					{ID: "check", Entry: "true", Files: "*.txt"},
				},
			},
		},
	}
	cfg.SetDefaults()

	r, _ := newTestRunner(t, cfg, dir)
	report, err := r.Run(context.Background(), Options{})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusPassed, report.Results[0].Status)
	assert.Equal(t, 1, report.Results[0].Files)
}

func TestRunCommitMsgStage(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	msgFile := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(msgFile, []byte("feat: add thing\n"), 0600))

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: config.RepoLocal,
				Hooks: []config.Hook{
					{ID: "msg-check", Entry: "cat", Stages: []string{config.StageCommitMsg}},
				},
			},
		},
	}
	cfg.SetDefaults()

	r, _ := newTestRunner(t, cfg, dir)
	report, err := r.Run(context.Background(), Options{
		Stage:         config.StageCommitMsg,
		CommitMsgFile: msgFile,
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusPassed, report.Results[0].Status)
}

func TestRunCommitMsgRequiresFile(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: config.RepoLocal,
				Hooks: []config.Hook{
					{ID: "msg-check", Entry: "cat", Stages: []string{config.StageCommitMsg}},
				},
			},
		},
	}
	cfg.SetDefaults()

	r, _ := newTestRunner(t, cfg, dir)
	_, err := r.Run(context.Background(), Options{Stage: config.StageCommitMsg})
	assert.Error(t, err)
}

func TestRunSingleHook(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: config.RepoLocal,
				Hooks: []config.Hook{
					{ID: "one", Entry: "true", AlwaysRun: true},
					{ID: "two", Entry: "false", AlwaysRun: true},
				},
			},
		},
	}
	cfg.SetDefaults()

	r, _ := newTestRunner(t, cfg, dir)
	report, err := r.Run(context.Background(), Options{HookID: "one"})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "one", report.Results[0].ID)
	assert.False(t, report.Failed())
}

func TestRunUnknownHook(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	cfg := &config.Config{
		Repos: []config.Repo{
			{Repo: config.RepoLocal, Hooks: []config.Hook{{ID: "one", Entry: "true"}}},
		},
	}
	cfg.SetDefaults()

	r, _ := newTestRunner(t, cfg, dir)
	_, err := r.Run(context.Background(), Options{HookID: "nope"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeHookNotFound, errors.GetCode(err))
}

func TestRunUnknownStage(t *testing.T) {
	cfg := &config.Config{}
	r, _ := newTestRunner(t, cfg, t.TempDir())

	_, err := r.Run(context.Background(), Options{Stage: "post-rewrite"})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStageUnknown, errors.GetCode(err))
}

func TestRunRemoteHook(t *testing.T) {
	testutil.RequireGit(t)

	hookRepo := t.TempDir()
	testutil.CreateHookRepo(t, hookRepo, "v1.0.0", `- id: say-hi
  name: Say hi
  entry: echo
  args: ["hi"]
  pass_filenames: false
`)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: hookRepo,
				Rev:  "v1.0.0",
				Hooks: []config.Hook{
					{ID: "say-hi", AlwaysRun: true},
				},
			},
		},
	}
	cfg.SetDefaults()

	r, out := newTestRunner(t, cfg, dir)
	report, err := r.Run(context.Background(), Options{AllFiles: true})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusPassed, report.Results[0].Status)
	assert.Equal(t, "Say hi", report.Results[0].Name)
	assert.Contains(t, out.String(), "Say hi")
}

func TestRunRemoteHookMissingDefinition(t *testing.T) {
	testutil.RequireGit(t)

	hookRepo := t.TempDir()
	testutil.CreateHookRepo(t, hookRepo, "v1.0.0", `- id: other
  entry: echo
`)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo:  hookRepo,
				Rev:   "v1.0.0",
				Hooks: []config.Hook{{ID: "say-hi", AlwaysRun: true}},
			},
		},
	}
	cfg.SetDefaults()

	r, _ := newTestRunner(t, cfg, dir)
	report, err := r.Run(context.Background(), Options{AllFiles: true})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusFailed, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Output, "say-hi")
}

func TestRunWithScriptExecutor(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: config.RepoLocal,
				Hooks: []config.Hook{
					{ID: "frobnicate", Entry: "frobnicate", AlwaysRun: true},
				},
			},
		},
	}
	cfg.SetDefaults()

	// frobnicate does not exist; the executor substitutes a script
	fake := &testutil.ScriptExecutor{
		Scripts: map[string]string{
			"frobnicate": `echo "checked $# file(s)"; exit 0`,
		},
	}

	r, _ := newTestRunner(t, cfg, dir)
	r = r.WithExecutor(fake)

	report, err := r.Run(context.Background(), Options{AllFiles: true, Verbose: true})
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, StatusPassed, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Output, "checked")
}

func TestShouldPassFilenames(t *testing.T) {
	r := &Runner{}

	truth := true
	falsity := false

	// default is true
	assert.True(t, r.shouldPassFilenames(&config.Hook{}, &invocation{}))

	// the definition default applies when the manifest is silent
	assert.False(t, r.shouldPassFilenames(&config.Hook{}, &invocation{passFilenames: &falsity}))

	// the manifest wins over the definition
	assert.True(t, r.shouldPassFilenames(
		&config.Hook{PassFilenames: &truth},
		&invocation{passFilenames: &falsity},
	))
}

func TestRunBuiltinsJudgeWholeTree(t *testing.T) {
	testutil.RequireGit(t)

	dir := t.TempDir()
	testutil.InitGitRepo(t, dir)
	testutil.CreateCommit(t, dir, "main.go", "package main\n")
	testutil.StageFile(t, dir, "notes.txt", "scratch\n")

	cfg := &config.Config{
		Repos: []config.Repo{
			{
				Repo: config.RepoLocal,
				Hooks: []config.Hook{
					{ID: "go-lint", Entry: "true", Files: "**/*.go"},
				},
			},
			{
				Repo: config.RepoBuiltin,
				Hooks: []config.Hook{
					{ID: "check-hooks-apply"},
				},
			},
		},
	}
	cfg.SetDefaults()

	// Pre-commit sees only the staged notes.txt, but main.go in the
	// tree satisfies go-lint's pattern.
	r, _ := newTestRunner(t, cfg, dir)
	report, err := r.Run(context.Background(), Options{})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, StatusSkipped, report.Results[0].Status)
	assert.Equal(t, StatusPassed, report.Results[1].Status)
	assert.False(t, report.Failed())

	// A hook no tracked file satisfies is still flagged.
	cfg.Repos[0].Hooks = append(cfg.Repos[0].Hooks,
		config.Hook{ID: "proto-lint", Entry: "true", Files: "**/*.proto"})
	cfg.SetDefaults()

	report, err = r.Run(context.Background(), Options{})
	require.NoError(t, err)

	require.Len(t, report.Results, 3)
	builtin := report.Results[2]
	assert.Equal(t, StatusFailed, builtin.Status)
	assert.Contains(t, builtin.Output, "proto-lint")
	assert.NotContains(t, builtin.Output, "go-lint")
}
