package convert

import (
	"regexp"
	"strings"
)

var (
	// page_title inside the leading frontmatter block only.
	pageTitleRe = regexp.MustCompile(`^(---\n(?:.*\n)*?)page_title:[ \t]*(.+?)(\n(?:.*\n)*?---)`)

	titleLineRe   = regexp.MustCompile(`(?m)^title:[ \t]*(.+?)[ \t]*$`)
	titleInsertRe = regexp.MustCompile(`(?m)^(title:[ \t]*.+)$`)

	// First H1 directly after the closing frontmatter delimiter.
	duplicateH1Re = regexp.MustCompile(`(---\n)\n*# .+\n\n?`)
)

// TransformFrontmatter renames the first page_title key in the YAML
// frontmatter to title. The destination dialect carries the page heading in
// frontmatter, not in the body.
func TransformFrontmatter(content string) string {
	return replaceFirst(pageTitleRe, content, "${1}title: ${2}${3}")
}

// AddSidebarTitle injects a sidebarTitle after the title line when the nav
// lookup has a short label for this document and the label differs from the
// existing title.
//
// dstRel is the destination path relative to the docs root, e.g.
// "concepts/constructs.mdx".
func AddSidebarTitle(content, dstRel string, titles map[string]string) string {
	navKey := strings.TrimSuffix(dstRel, ".mdx")
	sidebarTitle, ok := titles[navKey]
	if !ok || sidebarTitle == "" {
		return content
	}

	if m := titleLineRe.FindStringSubmatch(content); m != nil {
		current := strings.Trim(strings.TrimSpace(m[1]), `'"`)
		if current == sidebarTitle {
			return content
		}
	}

	// Splice rather than regex-expand: a label containing "$" must be taken
	// literally.
	loc := titleInsertRe.FindStringIndex(content)
	if loc == nil {
		return content
	}
	return content[:loc[1]] + "\nsidebarTitle: " + sidebarTitle + content[loc[1]:]
}

// RemoveDuplicateH1 drops the first H1 heading that appears right after the
// frontmatter block; the frontmatter title replaces it.
func RemoveDuplicateH1(content string) string {
	return replaceFirst(duplicateH1Re, content, "${1}\n")
}

// replaceFirst rewrites only the first match of re, expanding $-style group
// references in template.
func replaceFirst(re *regexp.Regexp, content, template string) string {
	loc := re.FindStringSubmatchIndex(content)
	if loc == nil {
		return content
	}
	out := make([]byte, 0, len(content))
	out = append(out, content[:loc[0]]...)
	out = re.ExpandString(out, template, content, loc)
	out = append(out, content[loc[1]:]...)
	return string(out)
}
