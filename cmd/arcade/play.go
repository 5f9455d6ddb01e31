package main

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/led-arcade/internal/menu"
	"github.com/vovakirdan/led-arcade/internal/platform/console"
	"github.com/vovakirdan/led-arcade/internal/platform/tui"
	"github.com/vovakirdan/led-arcade/internal/platform/window"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play one game in the terminal",
	Long: `Start the given game straight away. The program exits once the
game-over screen is dismissed.

Difficulty options:
  easy   - Slower frames, extra lives
  normal - Frame timings as configured
  hard   - Faster frames, fewer lives and less ammo
  fixed  - Configured timings, no speed-up as the score grows

Examples:
  arcade play tetris
  arcade play snake --difficulty hard
  arcade play tanks --seed 42`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFrontEnd(cmd, args, tui.Run)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with the title-screen menu",
	Long: `Start the arcade the way the device boots: a title screen per game.
Push the stick left or right to change game and press any button to play.
After the game-over screen you return to the menu.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFrontEnd(cmd, args, tui.Run)
	},
}

var consoleCmd = &cobra.Command{
	Use:   "console [game]",
	Short: "Run the arcade on a raw console",
	Long: `Draw the LED matrix with tcell instead of Bubble Tea. Without a game
argument the menu starts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFrontEnd(cmd, args, console.Run)
	},
}

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Run the arcade in a desktop window",
	Long: `Show the LED matrix in a desktop window. Held arrow keys act like a
held joystick. Without a game argument the menu starts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWindow,
}

// frontEnd runs a program until it ends or the player quits.
type frontEnd func(ctx context.Context, env registry.Env, prog menu.Program) error

func runFrontEnd(cmd *cobra.Command, args []string, run frontEnd) error {
	prog, err := programFor(cmd, args)
	if err != nil {
		return err
	}
	if err := requireTerminal(); err != nil {
		return err
	}
	// The terminal belongs to the matrix, so logs only go to --log-file.
	env, closer, err := buildEnv(io.Discard, log.Options{ReportTimestamp: true})
	if err != nil {
		return err
	}
	defer closer.Close()

	return run(cmd.Context(), env, prog)
}

func runWindow(cmd *cobra.Command, args []string) error {
	prog, err := programFor(cmd, args)
	if err != nil {
		return err
	}
	env, closer, err := buildEnv(cmd.ErrOrStderr(), log.Options{ReportTimestamp: true})
	if err != nil {
		return err
	}
	defer closer.Close()

	return window.Run(cmd.Context(), env, prog)
}
