package main

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"rlebw/bench"
	"rlebw/combine"
	"rlebw/convert"
	"rlebw/generate"
	"rlebw/inspect"
	"rlebw/parallel"
	"rlebw/transform"
)

type CLI struct {
	LogLevel  string `help:"Minimum level of log messages" enum:"debug,info,warn,error" default:"info" env:"RLEBW_LOG_LEVEL"`
	LogFormat string `help:"Log output format" enum:"text,json" default:"text" env:"RLEBW_LOG_FORMAT"`
	Workers   int    `help:"Parallel workers for batch conversion, 0 uses every CPU" default:"0" env:"RLEBW_WORKERS"`

	Generate  generate.CLICmd  `cmd:"" help:"Create synthetic images"`
	Combine   combine.CLICmd   `cmd:"" help:"Boolean operations between images"`
	Transform transform.CLICmd `cmd:"" help:"Mirror and concatenate images"`
	Inspect   inspect.CLICmd   `cmd:"" help:"Print and compare images"`
	Convert   convert.CLICmd   `cmd:"" help:"Convert from and to other raster formats"`
	Bench     bench.CLICmd     `cmd:"" help:"Measure operation counts and timings"`
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("rlebw"),
		kong.Description("Run-length encoded black and white images."),
		kong.UsageOnError(),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
		kong.BindToProvider(func() (*parallel.Pool, error) {
			return parallel.Start(cli.Workers), nil
		}),
	)

	slog.SetDefault(newLogger(os.Stderr, cli.LogLevel, cli.LogFormat))
	slog.Debug("running", "command", kctx.Command())

	err := kctx.Run(kctx.Selected().Name)
	if errors.Is(err, inspect.ErrDifferent) {
		os.Exit(1)
	}
	kctx.FatalIfErrorf(err)
}
