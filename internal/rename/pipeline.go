package rename

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/open-constructs/docmigrate/internal/errors"
	"github.com/open-constructs/docmigrate/internal/report"
	"github.com/open-constructs/docmigrate/internal/sentinel"
)

// Classification decides how much of the rename pass a document receives.
type Classification string

const (
	// ClassStandard documents get link rewriting and the full brand rename.
	ClassStandard Classification = "standard"
	// ClassRestricted documents (release notes) get link rewriting only.
	ClassRestricted Classification = "restricted"
)

// Options configures a rename run.
type Options struct {
	DryRun bool
	// RestrictedDir marks documents under this path prefix as restricted
	// (slash-separated, e.g. "docs/release").
	RestrictedDir string
	// Out receives dry-run diffs and companion-rename notices.
	Out io.Writer
}

// Result summarizes the outcome for a single document.
type Result struct {
	Path           string
	Classification Classification
	Changed        bool
	Protections    int
	DiffLines      int
}

// Classify returns the document class for a path.
func Classify(path, restrictedDir string) Classification {
	if restrictedDir != "" && strings.Contains(filepath.ToSlash(path), restrictedDir) {
		return ClassRestricted
	}
	return ClassStandard
}

// ProcessContent runs one document through protect → rewrite → restore.
//
// The returned protection count is the number of sentinels applied. A
// leftover sentinel after restoration is recorded on the report and returned
// as a protection error; the caller must not write the returned content in
// that case.
func ProcessContent(content, path string, class Classification, rep *report.Report) (string, int, error) {
	masked, restorations, err := sentinel.Protect(content, ProtectedPatterns)
	if err != nil {
		return "", 0, err
	}

	masked = RewriteLinks(masked, path, rep)
	if class == ClassStandard {
		masked = RenameContent(masked)
	}

	out := sentinel.Restore(masked, restorations)

	if leftover := sentinel.Leftover(out); len(leftover) > 0 {
		rep.AddLeak(path, leftover)
		return out, len(restorations), apperrors.ProtectionLeakError(path, leftover)
	}

	return out, len(restorations), nil
}

// ProcessFile runs the rename pass on a single file.
//
// A missing file is recorded and skipped, not an error. A protection leak is
// recorded and the file is left unwritten; the run continues.
func ProcessFile(path string, opts Options, rep *report.Report) (Result, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("missing input file, skipping", "file", path)
			rep.AddMissing(path)
			return Result{Path: path}, nil
		}
		return Result{Path: path}, apperrors.Wrap(err, apperrors.CategoryFileSystem, "read file").WithContext("file", path)
	}

	class := Classify(path, opts.RestrictedDir)
	res := Result{Path: path, Classification: class}

	rep.FilesProcessed++
	if class == ClassRestricted {
		rep.RestrictedFiles++
	}

	original := string(raw)
	updated, protections, err := ProcessContent(original, path, class, rep)
	rep.Protections += protections
	res.Protections = protections
	if err != nil {
		// Reported on the accumulator; the batch continues with other files.
		slog.Error("rename pass failed", "file", path, "error", err)
		return res, nil
	}

	res.Changed = updated != original
	if !res.Changed {
		return res, nil
	}
	rep.FilesChanged++

	if opts.DryRun {
		if opts.Out != nil {
			res.DiffLines = report.WriteLineDiff(opts.Out, original, updated)
		}
		return res, nil
	}

	if err := writeFileAtomic(path, []byte(updated)); err != nil {
		return res, apperrors.Wrap(err, apperrors.CategoryFileSystem, "write file").WithContext("file", path)
	}
	return res, nil
}

// Run processes every listed file in order.
func Run(files []string, opts Options, rep *report.Report) error {
	for _, path := range files {
		slog.Info("processing file", "file", path, "class", Classify(path, opts.RestrictedDir))

		if _, err := ProcessFile(path, opts, rep); err != nil {
			return err
		}
	}
	return nil
}

// writeFileAtomic writes via a temp file in the same directory and renames it
// over the target, so a crashed run never leaves a half-written document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".docmigrate-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
