package config

import (
	"bytes"
	"os"

	"github.com/grovetools/hooks/errors"
	"gopkg.in/yaml.v3"
)

// RewriteRevs updates the pinned revisions of the given repository
// sources in a manifest file, preserving document layout and comments
// by editing the YAML node tree in place. The updates map is keyed by
// repository source URL. It returns the sources actually changed.
//
// This is the only operation that writes to a manifest: declarations
// are otherwise immutable once written.
func RewriteRevs(path string, updates map[string]string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read manifest file").
			WithDetail("path", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML manifest").
			WithDetail("path", path)
	}

	changed := rewriteRevNodes(&doc, updates)
	if len(changed) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to re-encode manifest")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to re-encode manifest")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to stat manifest file")
	}
	if err := os.WriteFile(path, buf.Bytes(), info.Mode().Perm()); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to write manifest file").
			WithDetail("path", path)
	}

	return changed, nil
}

// rewriteRevNodes walks the node tree and updates rev values for
// matching repo blocks. Returns the repo sources that changed.
func rewriteRevNodes(doc *yaml.Node, updates map[string]string) []string {
	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil
	}

	var reposSeq *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "repos" {
			reposSeq = root.Content[i+1]
			break
		}
	}
	if reposSeq == nil || reposSeq.Kind != yaml.SequenceNode {
		return nil
	}

	var changed []string
	for _, block := range reposSeq.Content {
		if block.Kind != yaml.MappingNode {
			continue
		}

		var repoURL string
		var revNode *yaml.Node
		for i := 0; i+1 < len(block.Content); i += 2 {
			switch block.Content[i].Value {
			case "repo":
				repoURL = block.Content[i+1].Value
			case "rev":
				revNode = block.Content[i+1]
			}
		}

		newRev, ok := updates[repoURL]
		if !ok || revNode == nil || revNode.Value == newRev {
			continue
		}

		revNode.Value = newRev
		revNode.Tag = "!!str"
		changed = append(changed, repoURL)
	}

	return changed
}
