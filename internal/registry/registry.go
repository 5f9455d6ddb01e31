// Package registry provides a global registry for game factories.
// Games register themselves in init() functions, allowing the menu and the
// CLI to discover and instantiate games without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/led-arcade/internal/config"
	"github.com/vovakirdan/led-arcade/internal/core"
)

// Game is one arcade game bound to its hardware.
type Game interface {
	// ID returns a unique identifier for this game (e.g., "tetris").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run is the game's cooperative loop. It returns nil once the player
	// dismisses the game-over screen, ctx.Err() when cancelled, or the first
	// hardware error.
	Run(ctx context.Context) error

	// State returns the current score and status.
	State() core.GameState
}

// Env is everything a game needs to be built.
type Env struct {
	HW     core.Hardware
	Prng   *core.Prng
	Config config.Config
	Logger *log.Logger
}

var discard = log.New(io.Discard)

// Log returns the environment logger, or a silent one.
func (e Env) Log() *log.Logger {
	if e.Logger == nil {
		return discard
	}
	return e.Logger
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
	// Rank orders the menu; lower comes first.
	Rank int
	// Banner is the title screen, one uint32 per column.
	Banner [core.Width]uint32
}

// Factory is a function that creates a new instance of a game.
type Factory func(Env) Game

type entry struct {
	info    GameInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(info GameInfo, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// List returns all registered games in menu order.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Rank != result[j].Rank {
			return result[i].Rank < result[j].Rank
		}
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string, env Env) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(env), nil
}

// Lookup returns the metadata for id.
func Lookup(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}
