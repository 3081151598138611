package convert

import (
	"encoding/json"
	"os"

	apperrors "github.com/open-constructs/docmigrate/internal/errors"
)

// navItem mirrors one entry of the navigation data document. Items either
// point at a document (path + title) or group nested routes, or both.
type navItem struct {
	Title  string    `json:"title"`
	Path   string    `json:"path"`
	Routes []navItem `json:"routes"`
}

// LoadSidebarTitles reads the navigation data JSON and flattens it into a
// path → short display label map. The map is loaded once by the orchestrator
// and passed into the pipeline; the pipeline never touches the filesystem for
// it.
func LoadSidebarTitles(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryConfig, "read nav data").WithContext("file", path)
	}

	var items []navItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CategoryConfig, "parse nav data").WithContext("file", path)
	}

	titles := make(map[string]string)
	walkNav(items, titles)
	return titles, nil
}

func walkNav(items []navItem, titles map[string]string) {
	for _, item := range items {
		if item.Path != "" && item.Title != "" {
			titles[item.Path] = item.Title
		}
		if len(item.Routes) > 0 {
			walkNav(item.Routes, titles)
		}
	}
}
