package commands

import (
	"context"
	"os"

	"github.com/open-constructs/docmigrate/internal/convert"
	"github.com/open-constructs/docmigrate/internal/report"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	DryRun bool     `help:"Report changes without writing any files"`
	Files  []string `arg:"" optional:"" help:"Source-relative documents to convert instead of the full mapping"`
}

func (c *ConvertCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	rep := report.New("convert")

	if len(c.Files) > 0 {
		titles := loadTitles(cfg)
		runner := &convert.Runner{
			SrcBase:  cfg.SourceDir,
			DstBase:  cfg.DocsDir,
			Pipeline: &convert.Pipeline{Titles: titles},
			DryRun:   c.DryRun,
			Out:      os.Stdout,
		}
		pairs := make(map[string]string, len(c.Files))
		for _, rel := range c.Files {
			pairs[rel] = rel
		}
		if err := runner.Run(pairs, rep); err != nil {
			return err
		}
	} else if err := runConvert(cfg, c.DryRun, rep); err != nil {
		return err
	}

	rep.WriteSummary(os.Stdout)
	return finishRun(context.Background(), cfg, rep)
}
