package command

import (
	"context"
	"testing"
	"time"
)

func TestValidateHookID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid id", "trailing-whitespace", false},
		{"valid with dots", "check.yaml", false},
		{"valid with numbers", "2to3", false},
		{"empty id", "", true},
		{"starts with hyphen", "-hook", true},
		{"special characters", "hook;rm", true},
		{"spaces", "my hook", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateHookID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateHookID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid path", "src/main.go", false},
		{"valid with dashes", "my-file_2.txt", false},
		{"empty path", "", true},
		{"directory traversal", "../etc/passwd", true},
		{"semicolon", "file;rm -rf", true},
		{"backtick", "file`cmd`", true},
		{"dollar sign", "file$VAR", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFileName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFileName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGitRef(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"version tag", "v1.2.3", false},
		{"sha", "a1b2c3d", false},
		{"branch path", "feature/new-thing", false},
		{"empty ref", "", true},
		{"spaces", "v1 2", true},
		{"semicolon", "v1;rm", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateGitRef(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateGitRef(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRepoURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https url", "https://example.com/hooks.git", false},
		{"ssh url", "git@example.com:org/hooks.git", false},
		{"local path", "/srv/git/hooks", false},
		{"empty url", "", true},
		{"option injection", "--upload-pack=evil", true},
		{"shell metacharacters", "https://example.com/$(cmd)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRepoURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateRepoURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSafeBuilderValidate(t *testing.T) {
	sb := NewSafeBuilder()

	if err := sb.Validate("hookID", "fmt"); err != nil {
		t.Errorf("Expected valid hook id, got %v", err)
	}
	if err := sb.Validate("repoURL", "-evil"); err == nil {
		t.Error("Expected error for option-shaped URL")
	}
	if err := sb.Validate("unknown", "x"); err == nil {
		t.Error("Expected error for unknown validator")
	}
}

func TestBuildAndTimeout(t *testing.T) {
	sb := NewSafeBuilder()

	cmd, err := sb.Build(context.Background(), "git", "version")
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cmd.timeout != DefaultTimeout {
		t.Errorf("Expected default timeout %v, got %v", DefaultTimeout, cmd.timeout)
	}

	cmd = cmd.WithTimeout(30 * time.Minute)
	if cmd.timeout != MaxTimeout {
		t.Errorf("Expected timeout capped at %v, got %v", MaxTimeout, cmd.timeout)
	}

	if _, err := sb.Build(context.Background(), ""); err == nil {
		t.Error("Expected error for empty command name")
	}
}
