package rename

import "github.com/open-constructs/docmigrate/internal/rules"

// RenameContent applies the brand rename table. Callers must have
// sentinelized protected patterns first; the trailing catch-all rules have no
// other defense against eating a config file name or an env var.
func RenameContent(content string) string {
	return rules.Apply(content, ContentRules)
}
