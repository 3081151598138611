package main

import (
	"github.com/alecthomas/kong"

	"github.com/open-constructs/docmigrate/cmd/docmigrate/commands"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("docmigrate"),
		kong.Description("Migrate CDK Terrain documentation: dialect conversion and brand rename"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&commands.Global{}, &cli)
	ctx.FatalIfErrorf(err)
}
