package main

// @title        Schools Web
// @version      1.0
// @description  Server-rendered multi-tenant front-end for the schools application.
// @BasePath     /

import (
	"context"

	"github.com/alecthomas/kong"

	"github.com/schoolsapp/schools-web/cmd/web/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Debug   bool `help:"Force the debug log level."`
		Version kong.VersionFlag
		Serve   commands.ServeCmd `cmd:"" default:"1" help:"Start the web front-end."`
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Name("schools-web"),
		kong.Description("Multi-tenant schools web front-end."),
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))
	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Version: version})
	cmd.FatalIfErrorf(err)
}
