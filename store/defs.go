package store

import (
	"os"
	"path/filepath"

	"github.com/grovetools/hooks/errors"
	"gopkg.in/yaml.v3"
)

// DefsFileName is the hook definition file every hook repository must
// publish at its root. It is a bare YAML list of definitions.
const DefsFileName = ".grove-hooks-defs.yaml"

// Definition describes one hook a repository exposes. Consumer
// manifests select definitions by id and may override args, patterns,
// and stages.
type Definition struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name,omitempty"`
	Entry         string   `yaml:"entry"`
	Language      string   `yaml:"language,omitempty"`
	Args          []string `yaml:"args,omitempty"`
	Files         string   `yaml:"files,omitempty"`
	Exclude       string   `yaml:"exclude,omitempty"`
	Stages        []string `yaml:"stages,omitempty"`
	AlwaysRun     bool     `yaml:"always_run,omitempty"`
	PassFilenames *bool    `yaml:"pass_filenames,omitempty"`
}

// Definitions reads the hook definitions published by a clone.
func Definitions(cloneDir string) ([]Definition, error) {
	path := filepath.Join(cloneDir, DefsFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeStoreCorrupt,
				"hook repository does not publish "+DefsFileName).
				WithDetail("dir", cloneDir)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStoreCorrupt, "failed to read hook definitions").
			WithDetail("path", path)
	}

	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreCorrupt, "failed to parse hook definitions").
			WithDetail("path", path)
	}

	for _, def := range defs {
		if def.ID == "" {
			return nil, errors.New(errors.ErrCodeStoreCorrupt, "hook definition with empty id").
				WithDetail("path", path)
		}
		if def.Entry == "" {
			return nil, errors.New(errors.ErrCodeStoreCorrupt,
				"hook definition '"+def.ID+"' has no entry").
				WithDetail("path", path)
		}
	}

	return defs, nil
}

// Lookup returns the definition with the given id, or nil.
func Lookup(defs []Definition, id string) *Definition {
	for i := range defs {
		if defs[i].ID == id {
			return &defs[i]
		}
	}
	return nil
}
