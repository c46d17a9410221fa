// Command wshed segments a YAML scene with the marker-controlled watershed
// engine and prints a per-basin report.
//
//	wshed -scene scene.yaml [-config wshed.yaml] [-format text|yaml] [-mindepth n] [-v]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/katalvlaran/wshed/config"
	"github.com/katalvlaran/wshed/report"
	"github.com/katalvlaran/wshed/watershed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("wshed: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("wshed", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scenePath := fs.String("scene", "", "YAML scene file (gray plus seeds or mask)")
	configPath := fs.String("config", "wshed.yaml", "YAML configuration file (defaults when missing)")
	format := fs.String("format", "", "Output format: text or yaml (overrides config)")
	mindepth := fs.Int("mindepth", 0, "Minimum basin depth (overrides config and scene when > 0)")
	verbose := fs.Bool("v", false, "Log every collision and emission to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *scenePath == "" {
		fs.Usage()
		return flag.ErrHelp
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *format != "" {
		cfg.Output.Format = report.Format(*format)
	}
	if *verbose {
		cfg.Output.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Output.Verbose {
		level = slog.LevelDebug
	}
	watershed.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer watershed.SetLogger(nil)

	scene, err := config.LoadScene(*scenePath)
	if err != nil {
		return err
	}
	gray, mask, err := scene.Inputs()
	if err != nil {
		return err
	}

	depth := cfg.Watershed.MinDepth
	if scene.MinDepth > 0 {
		depth = scene.MinDepth
	}
	if *mindepth > 0 {
		depth = *mindepth
	}

	e, err := watershed.New(gray, mask, depth, cfg.Options()...)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.Run(ctx); err != nil && !errors.Is(err, watershed.ErrEmptyResult) {
		return fmt.Errorf("segmenting %s: %w", *scenePath, err)
	}
	r, err := report.New(gray, e)
	if err != nil {
		return err
	}
	return report.Write(stdout, r, cfg.Output.Format)
}
