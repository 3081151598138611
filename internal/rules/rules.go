// Package rules models ordered substitution rule tables.
//
// Both the protection table and the rename table are ordered collections:
// earlier entries take precedence over later, more general entries. The
// ordering is part of the authored contract: a general rule must never see
// text that a more specific rule ahead of it would have claimed. Callers apply
// tables with Apply, which walks entries strictly in order.
package rules

import (
	"regexp"
	"strings"
)

// ProtectionRule marks a substring form that must survive the rename pass
// byte-for-byte. Matches are replaced by sentinels before any rewriting and
// restored afterwards.
type ProtectionRule struct {
	Pattern     *regexp.Regexp
	Description string
}

// Protection builds a ProtectionRule from a regular expression source.
// Panics on an invalid pattern; tables are package-level literals.
func Protection(pattern, description string) ProtectionRule {
	return ProtectionRule{Pattern: regexp.MustCompile(pattern), Description: description}
}

// RenameRule rewrites one token form. A rule is either a literal substring
// replacement (Old non-empty) or a regexp replacement (Pattern non-nil).
// Literal rules replace all occurrences.
type RenameRule struct {
	Old         string
	Pattern     *regexp.Regexp
	Replacement string
}

// Literal builds a rename rule replacing every occurrence of old with new.
func Literal(old, new string) RenameRule {
	return RenameRule{Old: old, Replacement: new}
}

// Regex builds a rename rule from a regular expression source. The
// replacement may use $1-style group references.
func Regex(pattern, replacement string) RenameRule {
	return RenameRule{Pattern: regexp.MustCompile(pattern), Replacement: replacement}
}

// Apply rewrites content through every rule in table order.
func Apply(content string, table []RenameRule) string {
	for _, r := range table {
		content = r.apply(content)
	}
	return content
}

func (r RenameRule) apply(content string) string {
	if r.Pattern != nil {
		return r.Pattern.ReplaceAllString(content, r.Replacement)
	}
	return strings.ReplaceAll(content, r.Old, r.Replacement)
}
