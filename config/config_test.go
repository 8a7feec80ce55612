package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grovetools/hooks/errors"
)

func TestLoadFromBytes(t *testing.T) {
	yamlContent := []byte(`
repos:
  - repo: https://example.com/hooks-standard
    rev: v1.2.0
    hooks:
      - id: trailing-whitespace
      - id: end-of-file-fixer
        exclude: "testdata/"
        stages: [pre-commit, pre-push]
  - repo: local
    hooks:
      - id: lint
        entry: make lint
        pass_filenames: false
`)

	cfg, err := LoadFromBytes(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}

	if len(cfg.Repos) != 2 {
		t.Fatalf("Expected 2 repository blocks, got %d", len(cfg.Repos))
	}

	remote := &cfg.Repos[0]
	if !remote.IsRemote() {
		t.Error("Expected first block to be remote")
	}
	if remote.Rev != "v1.2.0" {
		t.Errorf("Expected rev v1.2.0, got %s", remote.Rev)
	}
	if len(remote.Hooks) != 2 {
		t.Fatalf("Expected 2 hooks in first block, got %d", len(remote.Hooks))
	}
	if remote.Hooks[1].Exclude != "testdata/" {
		t.Errorf("Expected exclude pattern testdata/, got %q", remote.Hooks[1].Exclude)
	}

	local := &cfg.Repos[1]
	if local.IsRemote() {
		t.Error("Expected second block to be local")
	}
	if local.Hooks[0].ShouldPassFilenames() {
		t.Error("Expected pass_filenames: false to stick")
	}

	// default_stages was not set, so the default applies
	if len(cfg.DefaultStages) != 1 || cfg.DefaultStages[0] != StagePreCommit {
		t.Errorf("Expected default stages [pre-commit], got %v", cfg.DefaultStages)
	}
}

func TestLoadFromBytesInvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("repos: [unclosed"))
	if err == nil {
		t.Fatal("Expected error for invalid YAML")
	}
	if errors.GetCode(err) != errors.ErrCodeConfigInvalid {
		t.Errorf("Expected CONFIG_INVALID, got %s", errors.GetCode(err))
	}
}

func TestLoadFromBytesSchemaViolation(t *testing.T) {
	// hooks entries must carry an id
	yamlContent := []byte(`
repos:
  - repo: https://example.com/hooks
    rev: v1.0.0
    hooks:
      - args: ["--fix"]
`)

	_, err := LoadFromBytes(yamlContent)
	if err == nil {
		t.Fatal("Expected schema validation error")
	}
}

func TestLoadFromBytesEnvExpansion(t *testing.T) {
	t.Setenv("HOOKS_REV", "v2.0.0")

	yamlContent := []byte(`
repos:
  - repo: https://example.com/hooks
    rev: ${HOOKS_REV}
    hooks:
      - id: fmt
`)

	cfg, err := LoadFromBytes(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}
	if cfg.Repos[0].Rev != "v2.0.0" {
		t.Errorf("Expected expanded rev v2.0.0, got %s", cfg.Repos[0].Rev)
	}
}

func TestLoadFromBytesEnvDefault(t *testing.T) {
	yamlContent := []byte(`
repos:
  - repo: https://example.com/hooks
    rev: ${UNSET_HOOKS_REV:-v1.0.0}
    hooks:
      - id: fmt
`)

	cfg, err := LoadFromBytes(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}
	if cfg.Repos[0].Rev != "v1.0.0" {
		t.Errorf("Expected default rev v1.0.0, got %s", cfg.Repos[0].Rev)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if errors.GetCode(err) != errors.ErrCodeConfigNotFound {
		t.Errorf("Expected CONFIG_NOT_FOUND, got %s", errors.GetCode(err))
	}
}

func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	nested := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	manifest := filepath.Join(tmpDir, ".grove-hooks.yaml")
	if err := os.WriteFile(manifest, []byte("repos: []\n"), 0600); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfigFile(nested)
	if err != nil {
		t.Fatalf("Failed to find manifest: %v", err)
	}
	if found != manifest {
		t.Errorf("Expected %s, got %s", manifest, found)
	}
}

func TestLoadDefault(t *testing.T) {
	tmpDir := t.TempDir()
	manifest := `
repos:
  - repo: local
    hooks:
      - id: fmt
        entry: gofmt
`
	if err := os.WriteFile(filepath.Join(tmpDir, ".grove-hooks.yaml"), []byte(manifest), 0600); err != nil {
		t.Fatal(err)
	}

	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Fatal(err)
		}
	})

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}
	if len(cfg.Repos) != 1 || cfg.Repos[0].Hooks[0].ID != "fmt" {
		t.Errorf("Unexpected manifest contents: %+v", cfg)
	}
}

func TestExtensions(t *testing.T) {
	yamlContent := []byte(`
repos:
  - repo: local
    hooks:
      - id: lint
        entry: make lint

# Extension fields from an ecosystem tool
ci:
  provider: buildkite
  parallelism: 4
`)

	cfg, err := LoadFromBytes(yamlContent)
	if err != nil {
		t.Fatalf("Failed to load manifest: %v", err)
	}

	if cfg.Extensions == nil {
		t.Fatal("Extensions map should not be nil")
	}
	if _, ok := cfg.Extensions["ci"]; !ok {
		t.Fatal("Expected 'ci' extension to be present")
	}

	type CIConfig struct {
		Provider    string `yaml:"provider"`
		Parallelism int    `yaml:"parallelism"`
	}

	var ci CIConfig
	if err := cfg.UnmarshalExtension("ci", &ci); err != nil {
		t.Fatalf("Failed to unmarshal ci extension: %v", err)
	}
	if ci.Provider != "buildkite" {
		t.Errorf("Expected provider buildkite, got %s", ci.Provider)
	}
	if ci.Parallelism != 4 {
		t.Errorf("Expected parallelism 4, got %d", ci.Parallelism)
	}
}
