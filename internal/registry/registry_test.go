package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/led-arcade/internal/core"
)

type stubGame struct {
	id  string
	env Env
}

func (g *stubGame) ID() string                  { return g.id }
func (g *stubGame) Title() string               { return "Stub " + g.id }
func (g *stubGame) Run(ctx context.Context) error { return ctx.Err() }
func (g *stubGame) State() core.GameState       { return core.GameState{} }

func TestRegisterListCreate(t *testing.T) {
	Register(GameInfo{ID: "zz-second", Title: "Second", Rank: 2}, func(env Env) Game {
		return &stubGame{id: "zz-second", env: env}
	})
	Register(GameInfo{ID: "zz-first", Title: "First", Rank: -1}, func(env Env) Game {
		return &stubGame{id: "zz-first", env: env}
	})

	list := List()
	require.GreaterOrEqual(t, len(list), 2)
	assert.Equal(t, "zz-first", list[0].ID, "lowest rank comes first")

	idx := map[string]int{}
	for i, info := range list {
		idx[info.ID] = i
	}
	assert.Less(t, idx["zz-first"], idx["zz-second"])

	prng := core.NewPrng(5)
	g, err := Create("zz-second", Env{Prng: prng})
	require.NoError(t, err)
	assert.Equal(t, "zz-second", g.ID())
	assert.Same(t, prng, g.(*stubGame).env.Prng)

	assert.True(t, Exists("zz-first"))
	info, ok := Lookup("zz-first")
	assert.True(t, ok)
	assert.Equal(t, "First", info.Title)
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no-such-game", Env{})
	assert.EqualError(t, err, `registry: unknown game "no-such-game"`)
	assert.False(t, Exists("no-such-game"))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	factory := func(Env) Game { return &stubGame{id: "zz-dup"} }
	Register(GameInfo{ID: "zz-dup"}, factory)
	assert.Panics(t, func() { Register(GameInfo{ID: "zz-dup"}, factory) })
}

func TestEnvLogFallsBackToDiscard(t *testing.T) {
	assert.NotNil(t, Env{}.Log())
}
