// Package sentinel implements the protect/restore layer of the rename pass.
//
// Protected matches are swapped for uniquely numbered placeholder tokens
// before any rewriting happens, and swapped back afterwards. The token shape
// (`<<PROT_nnnn>>`) is reserved: Protect refuses documents that already
// contain it, so a sentinel can never be confused with legitimate content and
// restoration is order-independent by construction.
package sentinel

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/open-constructs/docmigrate/internal/errors"
	"github.com/open-constructs/docmigrate/internal/rules"
)

// tokenShape matches anything shaped like a sentinel, including malformed
// widths, so leak detection errs on the side of reporting.
var tokenShape = regexp.MustCompile(`<<PROT_\d{4,}>>`)

// Restoration maps one sentinel back to the protected text it replaced.
type Restoration struct {
	Sentinel string
	Original string
}

// Protect replaces every protected match with a fresh sentinel, applying the
// rules strictly in table order. The returned restorations are in match order.
//
// A document that already contains a sentinel-shaped token is rejected as a
// configuration error: continuing would make leak detection meaningless and
// risks corrupting the document on restore.
func Protect(content string, table []rules.ProtectionRule) (string, []Restoration, error) {
	if existing := tokenShape.FindString(content); existing != "" {
		return "", nil, apperrors.ConfigError("document already contains a reserved sentinel token").
			WithContext("token", existing)
	}

	var restorations []Restoration
	counter := 0
	for _, rule := range table {
		content = rule.Pattern.ReplaceAllStringFunc(content, func(match string) string {
			token := fmt.Sprintf("<<PROT_%04d>>", counter)
			counter++
			restorations = append(restorations, Restoration{Sentinel: token, Original: match})
			return token
		})
	}
	return content, restorations, nil
}

// Restore replays restorations, swapping each sentinel back to its original
// text. Replay runs in reverse insertion order, mirroring the historical
// behavior; because every sentinel is unique the order does not affect the
// result.
func Restore(content string, restorations []Restoration) string {
	for i := len(restorations) - 1; i >= 0; i-- {
		content = strings.ReplaceAll(content, restorations[i].Sentinel, restorations[i].Original)
	}
	return content
}

// Leftover returns all sentinel-shaped tokens remaining in content. A
// non-empty result after Restore is a protection leak and must be surfaced,
// never silently repaired.
func Leftover(content string) []string {
	return tokenShape.FindAllString(content, -1)
}
