package convert

import (
	"fmt"
	"regexp"
	"strings"
)

// Callout severities in the destination dialect. The legacy dialects carry
// more labels than the destination has components, so the mapping collapses:
// Warning and Important → Warning, Note → Note, Hands-on and unlabeled tips →
// Tip. Anything unrecognized passes through unchanged; guessing a severity
// would be worse than leaving the legacy marker visible.
type calloutRule struct {
	pattern  *regexp.Regexp
	severity string
}

// Arrow-prefix dialect (~>, ->, +->), checked in order per line.
var arrowCalloutRules = []calloutRule{
	{regexp.MustCompile(`^~>\s*\*\*Warning:?\*\*:?\s*(.+)$`), "Warning"},
	{regexp.MustCompile(`^~>\s*\*\*Important:?\*\*:?\s*(.+)$`), "Warning"},
	{regexp.MustCompile(`^~>\s*\*\*Note:?\*\*:?\s*(.+)$`), "Note"},
	{regexp.MustCompile(`^->\s*\*\*Note:?\*\*:?\s*(.+)$`), "Note"},
	{regexp.MustCompile(`^\+->\s*\*\*Note:?\*\*:?\s*(.+)$`), "Tip"},
	{regexp.MustCompile(`^\+->\s*(.+)$`), "Tip"},
}

// Blockquote dialect.
var blockquoteCalloutRules = []calloutRule{
	{regexp.MustCompile(`^>\s*\*\*Note:?\*\*:?\s*(.+)$`), "Note"},
	{regexp.MustCompile(`^>\s*\*\*Hands[\s-][Oo]n:?\*\*:?\s*(.+)$`), "Tip"},
}

// ConvertArrowCallouts normalizes the arrow-prefix callout dialect.
func ConvertArrowCallouts(content string) string {
	return convertCallouts(content, arrowCalloutRules)
}

// ConvertBlockquoteCallouts normalizes the blockquote callout dialect.
func ConvertBlockquoteCallouts(content string) string {
	return convertCallouts(content, blockquoteCalloutRules)
}

func convertCallouts(content string, rules []calloutRule) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		out = append(out, convertCalloutLine(line, rules))
	}
	return strings.Join(out, "\n")
}

func convertCalloutLine(line string, rules []calloutRule) string {
	for _, rule := range rules {
		if m := rule.pattern.FindStringSubmatch(line); m != nil {
			return fmt.Sprintf("<%s>%s</%s>", rule.severity, m[1], rule.severity)
		}
	}
	return line
}
