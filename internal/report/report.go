// Package report accumulates per-run findings and statistics.
//
// The pipelines never write to shared globals: each processing call receives
// a *Report and appends to it, and callers merge reports when they fan out.
// This keeps every transform independently testable.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// ReviewItem is a line that needs a human decision and is deliberately not
// rewritten (legacy forum links, shortlink domains).
type ReviewItem struct {
	File   string
	Line   int
	Text   string
	Reason string
}

// InternalLink records a link destination still pointing at the source site's
// namespace after conversion. Inventory only, never rewritten here.
type InternalLink struct {
	File        string
	Kind        string
	Destination string
}

// Leak records sentinel tokens found after restoration.
type Leak struct {
	File   string
	Tokens []string
}

// Report collects everything a run wants to tell the operator at the end.
type Report struct {
	RunID     string
	Mode      string
	StartedAt time.Time

	FilesProcessed  int
	FilesChanged    int
	RestrictedFiles int
	Protections     int

	Missing   []string
	Review    []ReviewItem
	Links     []InternalLink
	Generated []string
	Leaks     []Leak
}

// New creates a Report tagged with a fresh run ID.
func New(mode string) *Report {
	return &Report{RunID: uuid.NewString(), Mode: mode, StartedAt: time.Now()}
}

// AddReview appends a manual-review entry.
func (r *Report) AddReview(file string, line int, text, reason string) {
	r.Review = append(r.Review, ReviewItem{File: file, Line: line, Text: text, Reason: reason})
}

// AddInternalLink appends a link-inventory entry.
func (r *Report) AddInternalLink(file, kind, destination string) {
	r.Links = append(r.Links, InternalLink{File: file, Kind: kind, Destination: destination})
}

// AddMissing records a listed input file that does not exist.
func (r *Report) AddMissing(file string) {
	r.Missing = append(r.Missing, file)
}

// AddGenerated records a file carrying a generated-file marker.
func (r *Report) AddGenerated(file string) {
	r.Generated = append(r.Generated, file)
}

// AddLeak records leftover sentinel tokens for a file.
func (r *Report) AddLeak(file string, tokens []string) {
	r.Leaks = append(r.Leaks, Leak{File: file, Tokens: tokens})
}

// Merge folds another report's findings and counters into r. The other
// report's identity fields (RunID, Mode, StartedAt) are ignored.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.FilesProcessed += other.FilesProcessed
	r.FilesChanged += other.FilesChanged
	r.RestrictedFiles += other.RestrictedFiles
	r.Protections += other.Protections
	r.Missing = append(r.Missing, other.Missing...)
	r.Review = append(r.Review, other.Review...)
	r.Links = append(r.Links, other.Links...)
	r.Generated = append(r.Generated, other.Generated...)
	r.Leaks = append(r.Leaks, other.Leaks...)
}

// HasLeaks reports whether any file ended the run with leftover sentinels.
func (r *Report) HasLeaks() bool {
	return len(r.Leaks) > 0
}

// WriteSummary renders the end-of-run block.
func (r *Report) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "\n=== Summary ===\n")
	fmt.Fprintf(w, "Files processed: %d\n", r.FilesProcessed)
	fmt.Fprintf(w, "Files changed: %d\n", r.FilesChanged)
	fmt.Fprintf(w, "Release files (links only): %d\n", r.RestrictedFiles)
	fmt.Fprintf(w, "Total protections applied: %d\n", r.Protections)

	if len(r.Missing) > 0 {
		fmt.Fprintf(w, "Missing inputs skipped: %d\n", len(r.Missing))
	}

	for _, leak := range r.Leaks {
		fmt.Fprintf(w, "ERROR: leftover sentinels in %s: %v\n", leak.File, leak.Tokens)
	}

	if len(r.Review) > 0 {
		fmt.Fprintf(w, "\n=== Manual Review Required (%d items) ===\n", len(r.Review))
		for _, item := range r.Review {
			fmt.Fprintf(w, "  %s:%d [%s]\n", item.File, item.Line, item.Reason)
			fmt.Fprintf(w, "    %s\n", truncate(item.Text, 120))
		}
	}

	if len(r.Links) > 0 {
		fmt.Fprintf(w, "\nInternal links found (%d total):\n", len(r.Links))
		for _, link := range r.Links {
			fmt.Fprintf(w, "  %s: %s\n", link.File, link.Destination)
		}
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
