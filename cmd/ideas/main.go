package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tubeideas/internal/config"
	"tubeideas/internal/render"
	"tubeideas/internal/server"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ideas", flag.ContinueOnError)
	fs.SetOutput(stderr)
	channelID := fs.String("channel-id", "", "channel id, skips URL resolution")
	asJSON := fs.Bool("json", false, "print the raw result as JSON")
	timeout := fs.Duration("timeout", 0, "overall deadline (default ANALYZE_TIMEOUT)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: ideas [flags] <channel-url>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("exactly one channel URL is required")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: stderr})
	cfg := config.Load()
	cfg.ConfigureLogger()
	if *timeout <= 0 {
		*timeout = cfg.AnalyzeTimeout
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	analyzer, err := server.NewPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	if err := analyzer.CheckCredentials(); err != nil {
		return err
	}

	result, err := analyzer.Analyze(ctx, fs.Arg(0), *channelID)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	_, err = fmt.Fprint(stdout, render.Analysis(result, render.DefaultStyles()))
	return err
}
