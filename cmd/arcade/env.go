package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/led-arcade/internal/config"
	"github.com/vovakirdan/led-arcade/internal/menu"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

var errNoTerminal = errors.New("arcade needs an interactive terminal")

// loadConfig reads the configuration and applies --difficulty.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	return config.Resolve(cfg, flagDifficulty)
}

// newLogger writes to --log-file when set, otherwise to fallback. The
// returned closer releases the file.
func newLogger(fallback io.Writer, opts log.Options) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	opts.Level = level

	var closer io.Closer = io.NopCloser(nil)
	w := fallback
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closer = f, f
	}
	return log.NewWithOptions(w, opts), closer, nil
}

// buildEnv assembles the environment games share. The hardware is filled in
// by the front-end.
func buildEnv(fallback io.Writer, opts log.Options) (registry.Env, io.Closer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return registry.Env{}, nil, err
	}
	logger, closer, err := newLogger(fallback, opts)
	if err != nil {
		return registry.Env{}, nil, err
	}
	logger.Debug("config loaded", "difficulty", cfg.Difficulty)
	return registry.Env{Config: cfg, Logger: logger}, closer, nil
}

// seedSource honors --seed when it was given.
func seedSource(cmd *cobra.Command) menu.SeedSource {
	if cmd.Flags().Changed("seed") {
		return menu.SequenceSeeds(flagSeed)
	}
	return menu.ClockSeeds()
}

// programFor runs the named game alone, or the menu when args is empty.
func programFor(cmd *cobra.Command, args []string) (menu.Program, error) {
	seeds := seedSource(cmd)
	if len(args) == 0 {
		return menu.Cabinet(seeds), nil
	}
	id := args[0]
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", id)
	}
	return menu.Single(id, seeds), nil
}

// requireTerminal refuses to take over a pipe or a redirected file.
func requireTerminal() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}
	return nil
}
