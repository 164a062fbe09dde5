package export

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/omniworld-xyz/builder/internal/logger"
)

var log = logger.L()

// SaveAll writes generated files under root, creating parent directories as
// needed and overwriting existing files. Returns the written paths in sorted
// order. Paths in the map are slash-separated and relative to root.
func SaveAll(root string, files map[string]string) ([]string, error) {
	rels := make([]string, 0, len(files))
	for rel := range files {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	written := make([]string, 0, len(rels))
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return written, errors.WithMessagef(err, "failed to create directory for %q", rel)
		}
		if err := os.WriteFile(path, []byte(files[rel]), 0644); err != nil {
			return written, errors.WithMessagef(err, "failed to write %q", rel)
		}
		log.Debugf("Export: wrote %s", path)
		written = append(written, path)
	}
	return written, nil
}
