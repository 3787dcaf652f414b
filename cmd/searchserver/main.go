package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Serve    ServeCommand    `cmd:"serve" help:"Start the search server."`
	Search   SearchCommand   `cmd:"search" help:"Search documents using a search server."`
	Summary  SummaryCommand  `cmd:"summary" help:"Search documents and summarize the results."`
	Document DocumentCommand `cmd:"document" help:"Get a single document from the index."`
	History  HistoryCommand  `cmd:"history" help:"List recent searches."`
	Inspect  InspectCommand  `cmd:"inspect" help:"Inspect the fields of the Azure AI Search index."`
	TUI      TUICommand      `cmd:"tui" help:"Search interactively."`
	Version  VersionCommand  `cmd:"version" help:"Print the version of the search server."`
}

func main() {
	var cli CLI
	ctx := context.Background()
	kctx := kong.Parse(&cli, kong.UsageOnError(), kong.BindTo(ctx, (*context.Context)(nil)))
	if err := kctx.Run(); err != nil {
		log := getLogger("error")
		log.Error("error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getLogger(level string) *slog.Logger {
	ll := slog.LevelInfo
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: ll,
	}))
}
