package commands

import (
	"context"
	"os"

	"github.com/open-constructs/docmigrate/internal/report"
)

// RunCmd implements the 'run' command: the full two-stage migration.
type RunCmd struct {
	DryRun bool `help:"Report changes without writing any files"`
}

func (r *RunCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	rep := report.New("run")
	if err := runConvert(cfg, r.DryRun, rep); err != nil {
		return err
	}
	// The rename pass operates on the converted docs tree. In dry-run mode
	// the converted files were never written, so rename inspects whatever is
	// already on disk.
	if err := runRename(cfg, r.DryRun, rep); err != nil {
		return err
	}
	rep.WriteSummary(os.Stdout)
	return finishRun(context.Background(), cfg, rep)
}
