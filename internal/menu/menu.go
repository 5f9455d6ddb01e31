// Package menu is the title-screen game picker that runs on the LED device.
// The stick cycles through the registered games, any button launches the one
// on screen, and the menu resumes once the game returns.
package menu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

// ErrNoGames is returned when the registry is empty.
var ErrNoGames = errors.New("menu: no games registered")

// SeedSource yields the seed for each launched game.
type SeedSource func() uint32

// ClockSeeds seeds from the wall clock.
func ClockSeeds() SeedSource {
	return func() uint32 {
		return uint32(time.Now().UnixNano())
	}
}

// SequenceSeeds yields start, start+1, ... so sessions replay exactly.
func SequenceSeeds(start uint32) SeedSource {
	next := start
	return func() uint32 {
		s := next
		next++
		return s
	}
}

// Menu drives the title screen.
type Menu struct {
	env        registry.Env
	seeds      SeedSource
	games      []registry.GameInfo
	index      int
	frameDelay uint64
	log        *log.Logger

	screen core.FrameBuffer
}

// New builds a menu over every registered game. env.Prng is ignored; each
// game gets a fresh generator from seeds.
func New(env registry.Env, seeds SeedSource) *Menu {
	if seeds == nil {
		seeds = ClockSeeds()
	}
	return &Menu{
		env:        env,
		seeds:      seeds,
		games:      registry.List(),
		frameDelay: env.Config.FrameDelay(env.Config.Menu.FrameMs),
		log:        env.Log().With("component", "menu"),
	}
}

// Selected returns the game currently on screen.
func (m *Menu) Selected() registry.GameInfo {
	if len(m.games) == 0 {
		return registry.GameInfo{}
	}
	return m.games[m.index]
}

// Step moves the selection by the stick and reports whether a button asked
// to launch the selected game.
func (m *Menu) Step(in core.Input) bool {
	if n := len(m.games); n > 0 && in.X != 0 {
		m.index = ((m.index+int(in.X))%n + n) % n
		m.log.Debug("selected", "game", m.games[m.index].ID)
	}
	return in.Pressed()
}

// Draw renders the selected game's banner.
func (m *Menu) Draw() {
	m.screen.Clear()
	if len(m.games) > 0 {
		m.screen.CopyFrom(core.FromRows(m.Selected().Banner, core.Green))
	}
}

// Screen returns the last composed frame.
func (m *Menu) Screen() *core.FrameBuffer {
	return &m.screen
}

// Run shows the menu until ctx is cancelled or the hardware fails.
func (m *Menu) Run(ctx context.Context) error {
	if len(m.games) == 0 {
		return ErrNoGames
	}
	hw := m.env.HW
	m.log.Info("menu started", "games", len(m.games))
	for {
		if m.Step(core.ReadInput(ctx, hw.Controller)) {
			if err := m.launch(ctx); err != nil {
				return err
			}
		}
		m.Draw()
		if err := hw.Present(ctx, &m.screen); err != nil {
			return err
		}
		if err := hw.Sleep(ctx, m.frameDelay); err != nil {
			return err
		}
	}
}

// launch runs the selected game to completion.
func (m *Menu) launch(ctx context.Context) error {
	return Launch(ctx, m.env, m.Selected().ID, m.seeds())
}

// Launch builds the game id with a generator seeded by seed and runs it to
// completion. Game failures are wrapped with the game id.
func Launch(ctx context.Context, env registry.Env, id string, seed uint32) error {
	env.Prng = core.NewPrng(seed)
	game, err := registry.Create(id, env)
	if err != nil {
		return err
	}

	logger := env.Log().With("component", "menu")
	logger.Info("launching game", "game", id, "seed", seed)
	if err := game.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run %s: %w", id, err)
	}
	logger.Info("game finished", "game", id, "score", game.State().Score)
	return nil
}

// Run is a shorthand for New(env, seeds).Run(ctx).
func Run(ctx context.Context, env registry.Env, seeds SeedSource) error {
	return New(env, seeds).Run(ctx)
}

// Program is what a front-end runs once it has wired env.HW.
type Program func(ctx context.Context, env registry.Env) error

// Cabinet is the full arcade: the menu, forever.
func Cabinet(seeds SeedSource) Program {
	return func(ctx context.Context, env registry.Env) error {
		return Run(ctx, env, seeds)
	}
}

// Single plays one game and stops after its game-over screen.
func Single(id string, seeds SeedSource) Program {
	if seeds == nil {
		seeds = ClockSeeds()
	}
	return func(ctx context.Context, env registry.Env) error {
		return Launch(ctx, env, id, seeds())
	}
}
