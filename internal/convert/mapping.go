package convert

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Top-level documents converted by name; everything else comes from the
// subdirectory enumeration.
var topLevelFiles = []string{"index.mdx", "community.mdx", "telemetry.mdx"}

// Subdirectories included in a full conversion. The API reference is
// machine-generated upstream and migrates through its own generator, so it is
// deliberately absent.
var convertSubdirs = []string{
	"concepts",
	"create-and-deploy",
	"develop-custom-constructs",
	"examples-and-guides",
	"test",
	"cli-reference",
	"release",
}

// DefaultMapping builds the source→destination relative path mapping for a
// full conversion run: the fixed top-level files plus every .mdx document in
// the known subdirectories. Paths keep their relative location.
func DefaultMapping(srcBase string) (map[string]string, error) {
	pairs := make(map[string]string)
	for _, name := range topLevelFiles {
		pairs[name] = name
	}

	for _, subdir := range convertSubdirs {
		dir := filepath.Join(srcBase, subdir)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mdx") {
				continue
			}
			rel := filepath.Join(subdir, entry.Name())
			pairs[rel] = rel
		}
	}

	return pairs, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
