// arcade plays the LED matrix games on a terminal, a desktop window, or over SSH.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play one game in the terminal
//	arcade menu              - Start the title-screen menu in the terminal
//	arcade console [game]    - Same, drawn on a raw tcell console
//	arcade window [game]     - Same, in a desktop window
//	arcade serve             - Start SSH server for remote play
//
// Global flags:
//
//	--seed <value>        - Seed the first game; later games use value+1, value+2, ...
//	--config <path>       - Custom arcade.yaml
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-file <path>     - Write logs to a file
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/led-arcade/internal/games/life"
	_ "github.com/vovakirdan/led-arcade/internal/games/races"
	_ "github.com/vovakirdan/led-arcade/internal/games/snake"
	_ "github.com/vovakirdan/led-arcade/internal/games/tanks"
	_ "github.com/vovakirdan/led-arcade/internal/games/tetris"
)

var (
	// Global flags
	flagSeed       uint32
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "LED Arcade - 8x32 LED matrix games",
	Long: `LED Arcade runs the games of an 8x32 LED matrix console: Tetris, Snake,
Tanks, Races and Life. The matrix is drawn in your terminal, in a desktop
window, or served over SSH.

Controls:
  Arrows/WASD  - Stick
  Space/Enter  - Stick button
  Z / X        - A / B buttons
  Q/Esc        - Quit

Examples:
  arcade list
  arcade play tetris
  arcade menu --difficulty hard
  arcade window
  arcade serve --ssh :2222`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Seed for the first game (default: wall clock)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom arcade.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
}
