// Package convert implements the structural format pass: it rewrites
// documents from the legacy docs dialect to the destination (Mintlify-style)
// dialect. The rename pass runs separately, after this one; its patterns
// assume this pass has already produced destination-dialect markup.
package convert

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "github.com/open-constructs/docmigrate/internal/errors"
	"github.com/open-constructs/docmigrate/internal/mdscan"
	"github.com/open-constructs/docmigrate/internal/report"
)

var (
	sourceCommentRe = regexp.MustCompile(`<!-- #NEXT_CODE_BLOCK_SOURCE:[^\n]* -->\n?`)
	tabAttrsRe      = regexp.MustCompile(`<Tab\s+heading="([^"]+)"(?:\s+group="[^"]*")?\s*>`)
)

const generatedMarker = "<!-- This file is generated"

// Pipeline applies the per-document transformation chain. Titles is the
// sidebar label lookup, loaded once by the orchestrator and injected here.
type Pipeline struct {
	Titles map[string]string
}

// Convert runs the full transformation chain on one document, in fixed
// order. dstRel is the destination path relative to the docs root (the
// sidebar lookup key); file names the document in report entries.
func (p *Pipeline) Convert(content, dstRel, file string, rep *report.Report) string {
	content = TransformFrontmatter(content)
	content = AddSidebarTitle(content, dstRel, p.Titles)
	content = RemoveDuplicateH1(content)
	content = RemoveSourceComments(content)
	p.flagGenerated(content, file, rep)
	content = ConvertCodeTabs(content)
	content = ConvertTabAttrs(content)
	content = ConvertArrowCallouts(content)
	content = ConvertBlockquoteCallouts(content)
	content = FixImagePaths(content)
	p.logInternalLinks(content, file, rep)
	return content
}

// RemoveSourceComments strips generator-metadata comments.
func RemoveSourceComments(content string) string {
	return sourceCommentRe.ReplaceAllString(content, "")
}

// ConvertTabAttrs rewrites <Tab heading="..." group="..."> to <Tab title="...">.
func ConvertTabAttrs(content string) string {
	return tabAttrsRe.ReplaceAllString(content, `<Tab title="${1}">`)
}

// FixImagePaths rewrites image link prefixes from /img/ to /images/.
func FixImagePaths(content string) string {
	return strings.ReplaceAll(content, "(/img/", "(/images/")
}

// flagGenerated warns about generated-file markers but leaves them in place;
// a generated document needs its generator fixed, not its output.
func (p *Pipeline) flagGenerated(content, file string, rep *report.Report) {
	if strings.Contains(content, generatedMarker) {
		slog.Warn("document contains generated-file comment", "file", file)
		rep.AddGenerated(file)
	}
}

// logInternalLinks inventories links still pointing into the source site's
// namespace. These are reported, not rewritten; the rename pass handles the
// prefix it owns and everything else needs a human.
func (p *Pipeline) logInternalLinks(content, file string, rep *report.Report) {
	links := mdscan.FilterByPrefix(mdscan.ExtractLinks([]byte(content)), "/terraform/")
	for _, link := range links {
		rep.AddInternalLink(file, string(link.Kind), link.Destination)
	}
}

// Runner converts a set of source documents into the destination tree.
type Runner struct {
	SrcBase  string
	DstBase  string
	Pipeline *Pipeline
	DryRun   bool
	// Out receives dry-run diffs.
	Out io.Writer
}

// ConvertFile converts one document. srcRel/dstRel are relative to
// SrcBase/DstBase.
func (r *Runner) ConvertFile(srcRel, dstRel string, rep *report.Report) error {
	srcPath := filepath.Join(r.SrcBase, srcRel)
	dstPath := filepath.Join(r.DstBase, dstRel)

	raw, err := os.ReadFile(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("missing input file, skipping", "file", srcPath)
			rep.AddMissing(srcPath)
			return nil
		}
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, "read file").WithContext("file", srcPath)
	}

	slog.Info("converting", "src", srcPath, "dst", dstPath)
	rep.FilesProcessed++

	original := string(raw)
	converted := r.Pipeline.Convert(original, dstRel, srcPath, rep)
	if converted != original {
		rep.FilesChanged++
	}

	if r.DryRun {
		if converted != original && r.Out != nil {
			report.WriteLineDiff(r.Out, original, converted)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, "create destination directory").WithContext("dir", filepath.Dir(dstPath))
	}
	if err := os.WriteFile(dstPath, []byte(converted), 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.CategoryFileSystem, "write file").WithContext("file", dstPath)
	}
	return nil
}

// Run converts every source→destination pair. Pairs are processed in sorted
// source order for stable logs.
func (r *Runner) Run(pairs map[string]string, rep *report.Report) error {
	for _, srcRel := range sortedKeys(pairs) {
		if err := r.ConvertFile(srcRel, pairs[srcRel], rep); err != nil {
			return err
		}
	}
	return nil
}
