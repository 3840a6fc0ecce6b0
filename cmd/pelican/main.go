package main

import (
	"context"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ScorpionResponse/pelican/cmd/pelican/commands"
	ferrors "github.com/ScorpionResponse/pelican/internal/foundation/errors"
	"github.com/ScorpionResponse/pelican/internal/version"
)

func main() {
	cli := &commands.CLI{}
	kong.Parse(cli,
		kong.Name("pelican"),
		kong.Description("A tool to generate a static blog, with restructured text input files."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String(), "default_settings": commands.DefaultSettingsFile},
	)

	adapter := ferrors.NewCLIErrorAdapter(cli.Debug, slog.Default())
	adapter.HandleError(commands.Execute(context.Background(), cli))
}
