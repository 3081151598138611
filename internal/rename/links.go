package rename

import (
	"regexp"
	"strings"

	"github.com/open-constructs/docmigrate/internal/report"
)

// Link rewrites run on every document, including restricted ones.
var internalLinkPrefix = regexp.MustCompile(`\]\(/terraform/cdktf/`)

// Reportable-but-not-rewritten domains. These need a human to pick the new
// destination, so they land in the review list untouched.
const (
	legacyForumDomain     = "discuss.hashicorp.com"
	legacyShortlinkDomain = "cdk.tf/"
)

// RewriteLinks rewrites cross-document link prefixes and repository
// references, and appends review entries for legacy domains it will not touch.
func RewriteLinks(content, file string, rep *report.Report) string {
	// Internal links: /terraform/cdktf/X → /docs/X
	content = internalLinkPrefix.ReplaceAllString(content, "](/docs/")

	// GitHub repo links (URL form first, then bare org/repo text)
	content = strings.ReplaceAll(content,
		"github.com/hashicorp/terraform-cdk",
		"github.com/open-constructs/cdk-terrain")
	content = strings.ReplaceAll(content,
		"hashicorp/terraform-cdk",
		"open-constructs/cdk-terrain")

	for i, line := range strings.Split(content, "\n") {
		if strings.Contains(line, legacyForumDomain) {
			rep.AddReview(file, i+1, strings.TrimSpace(line), "discuss.hashicorp.com link")
		}
		if strings.Contains(line, legacyShortlinkDomain) {
			rep.AddReview(file, i+1, strings.TrimSpace(line), "cdk.tf shortlink")
		}
	}

	return content
}
