package rename

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	apperrors "github.com/open-constructs/docmigrate/internal/errors"
)

// CompanionRenames maps asset and document files whose names carry the old
// brand token. Paths are relative to the migration root.
var CompanionRenames = map[string]string{
	"images/cdktf-app-architecture.png":    "images/cdktn-app-architecture.png",
	"images/cdktf-terraform-workflow.png":  "images/cdktn-terraform-workflow.png",
	"images/cdktf-terraform.png":           "images/cdktn-terraform.png",
	"docs/concepts/cdktf-architecture.mdx": "docs/concepts/cdktn-architecture.mdx",
}

// sidecarPathRename is the single embedded path reference the navigation
// sidecar must track after the architecture document rename.
const (
	sidecarOldPath = "docs/concepts/cdktf-architecture"
	sidecarNewPath = "docs/concepts/cdktn-architecture"
)

// RenameCompanions renames the companion files under root. Already-renamed
// and missing files are noted, not errors.
func RenameCompanions(root string, dryRun bool, out io.Writer) error {
	fmt.Fprintf(out, "\n=== File Renames ===\n")
	for _, oldRel := range sortedKeys(CompanionRenames) {
		newRel := CompanionRenames[oldRel]
		oldPath := filepath.Join(root, oldRel)
		newPath := filepath.Join(root, newRel)

		if _, err := os.Stat(oldPath); err != nil {
			if _, err := os.Stat(newPath); err == nil {
				fmt.Fprintf(out, "  Already renamed: %s\n", newRel)
			} else {
				fmt.Fprintf(out, "  MISSING: %s\n", oldRel)
			}
			continue
		}

		if dryRun {
			fmt.Fprintf(out, "  Would rename: %s → %s\n", oldRel, newRel)
			continue
		}
		if err := os.Rename(oldPath, newPath); err != nil {
			return apperrors.Wrap(err, apperrors.CategoryFileSystem, "rename companion file").
				WithContext("from", oldRel).WithContext("to", newRel)
		}
		fmt.Fprintf(out, "  Renamed: %s → %s\n", oldRel, newRel)
	}
	return nil
}

// UpdateSidecar rewrites the architecture document path inside the sidecar
// configuration document (docs.json). Returns whether the file changed.
func UpdateSidecar(path string, dryRun bool, out io.Writer) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, apperrors.Wrap(err, apperrors.CategoryFileSystem, "read sidecar").WithContext("file", path)
	}

	updated := strings.ReplaceAll(string(raw), sidecarOldPath, sidecarNewPath)
	if updated == string(raw) {
		return false, nil
	}

	if dryRun {
		fmt.Fprintf(out, "  Would update %s: %s → %s\n", path, sidecarOldPath, sidecarNewPath)
		return true, nil
	}
	if err := writeFileAtomic(path, []byte(updated)); err != nil {
		return false, apperrors.Wrap(err, apperrors.CategoryFileSystem, "write sidecar").WithContext("file", path)
	}
	fmt.Fprintf(out, "  Updated %s: %s → %s\n", path, sidecarOldPath, sidecarNewPath)
	return true, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
