// Package main is the entry point for Ghostblade.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/ghostblade/internal/game"
	"github.com/samdwyer/ghostblade/internal/level"
	"github.com/samdwyer/ghostblade/internal/telemetry"
	"github.com/samdwyer/ghostblade/internal/ui"
)

func main() {
	// .env is optional; variables may be set directly
	envErr := godotenv.Load()

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	useTUI := cfg.Renderer == game.RendererTUI ||
		(cfg.Renderer == game.RendererAuto && ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout))

	log, closeLog, err := newLogger(cfg, useTUI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	if envErr != nil {
		log.WithError(envErr).Debug(".env file not loaded")
	}

	if err := run(cfg, useTUI, log); err != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "ghostblade: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg game.Config, useTUI bool, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		log.WithError(err).Warn("telemetry setup failed, continuing without tracing")
	} else {
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.WithError(err).Warn("telemetry shutdown failed")
			}
		}()
	}

	ui.ConfigureLocale(cfg.LocaleDir, cfg.Lang)

	levels, err := level.LoadPack(ctx, level.Source(cfg.LevelDir))
	if err != nil {
		return err
	}
	if cfg.StartLevel > len(levels) {
		return fmt.Errorf("start level %d beyond the %d available", cfg.StartLevel, len(levels))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var front game.Frontend
	mode := game.RendererText
	if useTUI {
		mode = game.RendererTUI
		tui, err := ui.NewTUI()
		if err != nil {
			return fmt.Errorf("failed to initialize screen: %w", err)
		}
		defer tui.Close()
		front = tui
	} else {
		front = ui.NewText(os.Stdin, os.Stdout)
	}

	log.WithFields(logrus.Fields{
		"levels":   len(levels),
		"start":    cfg.StartLevel,
		"seed":     seed,
		"renderer": mode,
	}).Info("starting")

	sum, err := game.NewRunner(levels, front, log, seed).Run(ctx, cfg.StartLevel-1)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"cleared":  sum.LevelsCleared,
		"turns":    sum.Turns,
		"captures": sum.Captures,
		"quit":     sum.Quit,
	}).Info("finished")
	return nil
}

// newLogger builds the process logger. The full-screen interface owns the
// terminal, so without a log file its logs are discarded.
func newLogger(cfg game.Config, useTUI bool) (*logrus.Logger, func(), error) {
	log := logrus.New()

	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log.SetLevel(lvl)

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		log.SetOutput(f)
		log.SetFormatter(&logrus.JSONFormatter{})
		return log, func() { _ = f.Close() }, nil
	case useTUI:
		log.SetOutput(io.Discard)
	default:
		log.SetOutput(os.Stderr)
	}
	return log, func() {}, nil
}
