package convert

import (
	"regexp"
	"strings"
)

// LangTitles maps fence language identifiers to the display title injected on
// fences inside a CodeGroup. Unknown identifiers are left untitled.
var LangTitles = map[string]string{
	"ts":            "TypeScript",
	"typescript":    "TypeScript",
	"python":        "Python",
	"java":          "Java",
	"csharp":        "C#",
	"go":            "Go",
	"shell-session": "Shell",
	"shell":         "Shell",
	"bash":          "Bash",
	"json":          "JSON",
	"hcl":           "HCL",
	"terraform":     "HCL",
}

// fenceOpenRe matches a fence opener carrying only a language identifier.
var fenceOpenRe = regexp.MustCompile("^(```)([\\w-]+)\\s*$")

// scopeState is the per-document state of the fence annotator. Reset for
// every document; never shared.
type scopeState struct {
	insideGroup bool
	insideFence bool
}

// ConvertCodeTabs renames <CodeTabs> containers to <CodeGroup> and titles the
// code fences inside them.
func ConvertCodeTabs(content string) string {
	content = strings.ReplaceAll(content, "<CodeTabs>", "<CodeGroup>")
	content = strings.ReplaceAll(content, "</CodeTabs>", "</CodeGroup>")
	return AnnotateFences(content)
}

// AnnotateFences walks the document line by line and appends a display title
// to bare language fences, but only while inside a <CodeGroup> container and
// not already inside a fence. Fences outside a CodeGroup are never touched.
func AnnotateFences(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	var state scopeState

	for _, line := range lines {
		if strings.Contains(line, "<CodeGroup>") {
			state.insideGroup = true
			out = append(out, line)
			continue
		}
		if strings.Contains(line, "</CodeGroup>") {
			state.insideGroup = false
			out = append(out, line)
			continue
		}

		if state.insideGroup && !state.insideFence {
			if m := fenceOpenRe.FindStringSubmatch(line); m != nil {
				lang := m[2]
				if title := LangTitles[lang]; title != "" {
					line = "```" + lang + " " + title
				}
				state.insideFence = true
				out = append(out, line)
				continue
			}
		}

		if state.insideFence && strings.TrimSpace(line) == "```" {
			state.insideFence = false
		}

		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
