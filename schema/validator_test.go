package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSchema(t *testing.T) {
	data := EmbeddedSchema()
	require.NotEmpty(t, data)
	assert.Contains(t, string(data), "\"repos\"")
}

func TestValidatorAcceptsManifest(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	doc := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://example.com/hooks",
				"rev":  "v1.0.0",
				"hooks": []interface{}{
					map[string]interface{}{
						"id":      "fmt",
						"args":    []interface{}{"--fix"},
						"exclude": "vendor/",
						"stages":  []interface{}{"pre-commit"},
					},
				},
			},
		},
	}

	assert.NoError(t, v.Validate(doc))
}

func TestValidatorRejectsMissingRepos(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.Error(t, v.Validate(map[string]interface{}{}))
}

func TestValidatorRejectsHookWithoutID(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	doc := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://example.com/hooks",
				"hooks": []interface{}{
					map[string]interface{}{"args": []interface{}{"--fix"}},
				},
			},
		},
	}

	assert.Error(t, v.Validate(doc))
}

func TestValidatorRejectsUnknownStage(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	doc := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "https://example.com/hooks",
				"hooks": []interface{}{
					map[string]interface{}{
						"id":     "fmt",
						"stages": []interface{}{"post-rewrite"},
					},
				},
			},
		},
	}

	assert.Error(t, v.Validate(doc))
}

func TestValidatorAllowsExtensions(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	doc := map[string]interface{}{
		"repos": []interface{}{
			map[string]interface{}{
				"repo": "local",
				"hooks": []interface{}{
					map[string]interface{}{"id": "lint", "entry": "make lint"},
				},
			},
		},
		"ci": map[string]interface{}{"provider": "buildkite"},
	}

	assert.NoError(t, v.Validate(doc))
}
