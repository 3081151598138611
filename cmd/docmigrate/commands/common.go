// Package commands wires the docmigrate subcommands to the migration
// pipeline.
package commands

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/open-constructs/docmigrate/internal/config"
	"github.com/open-constructs/docmigrate/internal/convert"
	"github.com/open-constructs/docmigrate/internal/discover"
	"github.com/open-constructs/docmigrate/internal/errors"
	"github.com/open-constructs/docmigrate/internal/publish"
	"github.com/open-constructs/docmigrate/internal/rename"
	"github.com/open-constructs/docmigrate/internal/report"
	"github.com/open-constructs/docmigrate/internal/reviewstore"
)

// Global holds state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition with global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docmigrate.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Convert ConvertCmd `cmd:"" help:"Convert source documentation to the new docs dialect"`
	Rename  RenameCmd  `cmd:"" help:"Rewrite brand tokens and links across the docs tree"`
	Run     RunCmd     `cmd:"" help:"Run the full migration: convert, then rename"`
	Fetch   FetchCmd   `cmd:"" help:"Clone or update the upstream documentation repository"`
	Watch   WatchCmd   `cmd:"" help:"Watch the source tree and rerun the migration on changes"`
}

// AfterApply runs after flag parsing; sets up logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

func loadConfig(root *CLI) (*config.Config, error) {
	return config.Load(root.Config)
}

// loadTitles loads the sidebar-title lookup; a missing or broken navigation
// file degrades to no sidebar titles rather than failing the run.
func loadTitles(cfg *config.Config) map[string]string {
	if cfg.NavData == "" {
		return map[string]string{}
	}
	titles, err := convert.LoadSidebarTitles(cfg.NavData)
	if err != nil {
		slog.Warn("sidebar titles unavailable", "path", cfg.NavData, "error", err)
		return map[string]string{}
	}
	return titles
}

// runConvert executes the dialect-conversion pass over the configured source
// tree, writing results into the docs tree.
func runConvert(cfg *config.Config, dryRun bool, rep *report.Report) error {
	titles := loadTitles(cfg)

	pairs, err := convert.DefaultMapping(cfg.SourceDir)
	if err != nil {
		return err
	}
	runner := &convert.Runner{
		SrcBase:  cfg.SourceDir,
		DstBase:  cfg.DocsDir,
		Pipeline: &convert.Pipeline{Titles: titles},
		DryRun:   dryRun,
		Out:      os.Stdout,
	}
	return runner.Run(pairs, rep)
}

// runRename executes the brand-rename pass over the docs tree, including
// companion asset renames and the navigation sidecar update.
func runRename(cfg *config.Config, dryRun bool, rep *report.Report) error {
	files, err := discover.MDXFiles(cfg.DocsDir)
	if err != nil {
		return err
	}
	opts := rename.Options{DryRun: dryRun, RestrictedDir: cfg.ReleaseDir, Out: os.Stdout}
	if err := rename.Run(files, opts, rep); err != nil {
		return err
	}
	// Companion paths are relative to the migration root, the parent of the
	// docs tree (they cover sibling directories such as images/).
	if err := rename.RenameCompanions(filepath.Dir(cfg.DocsDir), dryRun, os.Stdout); err != nil {
		return err
	}
	if _, err := rename.UpdateSidecar(cfg.DocsJSON, dryRun, os.Stdout); err != nil {
		return err
	}
	return nil
}

// finishRun persists and publishes the run report per configuration and
// turns leftover protection sentinels into a command failure.
func finishRun(ctx context.Context, cfg *config.Config, rep *report.Report) error {
	if cfg.Store.Path != "" {
		store, err := reviewstore.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveRun(ctx, rep); err != nil {
			return err
		}
	}
	if cfg.Publish.Enabled {
		pub, err := publish.NewPublisher(cfg.Publish)
		if err != nil {
			return err
		}
		defer pub.Close()
		if err := pub.PublishReport(rep); err != nil {
			return err
		}
	}
	if rep.HasLeaks() {
		return errors.Newf(errors.CategoryProtection,
			"%d file(s) left protection sentinels behind", len(rep.Leaks))
	}
	return nil
}
