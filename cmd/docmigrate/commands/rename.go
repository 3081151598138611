package commands

import (
	"context"
	"os"

	"github.com/open-constructs/docmigrate/internal/rename"
	"github.com/open-constructs/docmigrate/internal/report"
)

// RenameCmd implements the 'rename' command.
type RenameCmd struct {
	DryRun bool     `help:"Report changes without writing any files"`
	Files  []string `arg:"" optional:"" help:"Explicit documents to process instead of the whole docs tree"`
}

func (r *RenameCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	rep := report.New("rename")

	if len(r.Files) > 0 {
		// Explicit file list: companion renames and the sidecar update only
		// happen on full-tree runs.
		opts := rename.Options{DryRun: r.DryRun, RestrictedDir: cfg.ReleaseDir, Out: os.Stdout}
		if err := rename.Run(r.Files, opts, rep); err != nil {
			return err
		}
	} else if err := runRename(cfg, r.DryRun, rep); err != nil {
		return err
	}

	rep.WriteSummary(os.Stdout)
	return finishRun(context.Background(), cfg, rep)
}
