package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDefs(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefsFileName), []byte(content), 0644))
	return dir
}

func TestDefinitions(t *testing.T) {
	dir := writeDefs(t, `- id: trailing-whitespace
  name: Trim trailing whitespace
  entry: trim-whitespace
  files: "**/*.txt"
  stages: [pre-commit]
- id: run-script
  entry: scripts/check.sh
  language: script
  pass_filenames: false
`)

	defs, err := Definitions(dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "trailing-whitespace", defs[0].ID)
	assert.Equal(t, "Trim trailing whitespace", defs[0].Name)
	assert.Equal(t, "**/*.txt", defs[0].Files)

	assert.Equal(t, "script", defs[1].Language)
	require.NotNil(t, defs[1].PassFilenames)
	assert.False(t, *defs[1].PassFilenames)
}

func TestDefinitionsMissingFile(t *testing.T) {
	_, err := Definitions(t.TempDir())
	assert.Error(t, err)
}

func TestDefinitionsInvalid(t *testing.T) {
	// Missing entry
	dir := writeDefs(t, `- id: broken
`)
	_, err := Definitions(dir)
	assert.Error(t, err)

	// Missing id
	dir = writeDefs(t, `- entry: something
`)
	_, err = Definitions(dir)
	assert.Error(t, err)

	// Not a list
	dir = writeDefs(t, `id: broken
entry: x
`)
	_, err = Definitions(dir)
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	defs := []Definition{
		{ID: "a", Entry: "a-cmd"},
		{ID: "b", Entry: "b-cmd"},
	}

	assert.Equal(t, "a-cmd", Lookup(defs, "a").Entry)
	assert.Nil(t, Lookup(defs, "c"))
}
