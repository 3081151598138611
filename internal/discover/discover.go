// Package discover finds documentation files for a run.
package discover

import (
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	apperrors "github.com/open-constructs/docmigrate/internal/errors"
)

// MDXFiles returns every .mdx document under root, sorted, as paths relative
// to the process working directory (root joined with the match).
func MDXFiles(root string) ([]string, error) {
	pattern := filepath.Join(root, "**", "*.mdx")
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryFileSystem, "glob documentation files").WithContext("pattern", pattern)
	}
	sort.Strings(matches)
	return matches, nil
}
