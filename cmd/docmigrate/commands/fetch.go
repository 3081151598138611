package commands

import (
	"context"
	"fmt"

	"github.com/open-constructs/docmigrate/internal/gitfetch"
)

// FetchCmd implements the 'fetch' command.
type FetchCmd struct{}

func (f *FetchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	res, err := gitfetch.Fetch(context.Background(), cfg.Upstream)
	if err != nil {
		return err
	}
	if res.Updated {
		fmt.Printf("Fetched %s into %s\n", cfg.Upstream.URL, res.Path)
	} else {
		fmt.Printf("Already up to date: %s\n", res.Path)
	}
	return nil
}
