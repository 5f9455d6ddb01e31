package tanks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/led-arcade/internal/config"
	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/core/coretest"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

func newGame(seed uint32, rig *coretest.Rig) *Game {
	if rig == nil {
		rig = coretest.NewRig(0)
	}
	return New(registry.Env{HW: rig.Hardware(), Prng: core.NewPrng(seed), Config: config.Default()})
}

func addEnemy(g *Game, pos core.Dot, origin int) *tank {
	g.enemies[g.enemyCount] = newTank(pos, origin, config.MaxTankMissiles)
	g.enemyCount++
	return &g.enemies[g.enemyCount-1]
}

func free(core.Dot) bool { return false }

func TestNewGame(t *testing.T) {
	g := newGame(1, nil)
	snap := g.Snapshot()

	assert.Equal(t, playerStart, snap.Player)
	assert.Equal(t, core.Right, snap.Heading)
	assert.Equal(t, 3, snap.Lives)
	assert.Empty(t, snap.Enemies)
	assert.Zero(t, snap.Missiles)
}

func TestRotateTurnsSpriteWithHeading(t *testing.T) {
	tk := newTank(playerStart, -1, 8)

	assert.True(t, tk.rotate(core.Up))
	assert.Equal(t, core.Up, tk.direction())
	assert.Equal(t, core.TankSprite.Rotate().Rotate().Rotate(), tk.figure)

	assert.False(t, tk.rotate(core.Up), "already facing up")

	assert.True(t, tk.rotate(core.Dot{}))
	assert.Equal(t, core.Right, tk.direction())
	assert.Equal(t, core.TankSprite, tk.figure, "four quarter turns are the identity")
}

func TestMoveTurnsBeforeDriving(t *testing.T) {
	tk := newTank(playerStart, -1, 8)

	tk.move(core.Up, free, false)
	assert.Equal(t, playerStart, tk.pos, "first frame only turns")
	assert.Equal(t, core.Up, tk.direction())

	tk.move(core.Up, free, false)
	assert.Equal(t, core.NewDot(3, 15), tk.pos)
}

func TestMoveBackward(t *testing.T) {
	tk := newTank(playerStart, -1, 8)

	tk.move(core.Left, free, true)
	assert.Equal(t, core.NewDot(2, 16), tk.pos)
	assert.Equal(t, core.Right, tk.direction(), "reversing keeps the heading")
}

func TestMoveBlockedByHeaderAndTanks(t *testing.T) {
	g := newGame(1, nil)
	g.player.pos = core.NewDot(3, core.FieldTop)
	g.player.rotate(core.Up)

	g.player.move(core.Up, g.blocked(&g.player), false)
	assert.Equal(t, core.NewDot(3, core.FieldTop), g.player.pos)

	g.player.pos = core.NewDot(3, 20)
	g.player.rotate(core.Right)
	addEnemy(g, core.NewDot(5, 20), 0)
	g.player.move(core.Right, g.blocked(&g.player), false)
	assert.Equal(t, core.NewDot(3, 20), g.player.pos)

	g.player.pos = core.NewDot(6, 25)
	g.player.move(core.Right, g.blocked(&g.player), false)
	assert.Equal(t, core.NewDot(6, 25), g.player.pos, "right wall")
}

func TestFireFromLeadingEdge(t *testing.T) {
	tests := []struct {
		dir  core.Dot
		want core.Dot
	}{
		{core.Right, core.NewDot(5, 17)},
		{core.Down, core.NewDot(4, 18)},
		{core.Left, core.NewDot(2, 17)},
		{core.Up, core.NewDot(4, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			tk := newTank(playerStart, -1, 8)
			tk.rotate(tt.dir)
			require.True(t, tk.fire())
			assert.Equal(t, tt.want, tk.missiles[0].pos)
			assert.Equal(t, tt.dir, tk.missiles[0].dir)
		})
	}
}

func TestFireDropsWhenSlotsFull(t *testing.T) {
	tk := newTank(playerStart, -1, 2)

	assert.True(t, tk.fire())
	assert.True(t, tk.fire())
	assert.False(t, tk.fire())
	assert.Equal(t, 2, tk.inFlight())
}

func TestMissileLeavesField(t *testing.T) {
	tk := newTank(core.NewDot(3, core.FieldTop+1), -1, 8)
	tk.rotate(core.Up)
	tk.fire()
	require.Equal(t, 1, tk.inFlight())

	tk.moveMissiles()
	assert.Zero(t, tk.inFlight(), "missiles vanish at the header")
}

func TestPlayerMissileKillsEnemy(t *testing.T) {
	g := newGame(1, nil)
	addEnemy(g, core.NewDot(3, 10), 0)
	g.player.missiles[0] = missile{pos: core.NewDot(4, 12), dir: core.Up}

	g.player.moveMissiles()
	g.checkCollisions()

	assert.Equal(t, 1, g.score)
	assert.Zero(t, g.enemyCount)
	assert.Zero(t, g.player.inFlight())
}

func TestEnemyMissileCostsLife(t *testing.T) {
	g := newGame(1, nil)
	g.player.pos = core.NewDot(3, 20)
	e := addEnemy(g, core.NewDot(0, 29), 2)
	e.missiles[0] = missile{pos: core.NewDot(4, 22), dir: core.Up}

	e.moveMissiles()
	g.checkCollisions()

	assert.Equal(t, 2, g.lives)
	assert.Equal(t, playerStart, g.player.pos, "player respawns")
	assert.Equal(t, PhasePlaying, g.phase)
}

func TestRespawnAvoidsEnemyOnStart(t *testing.T) {
	g := newGame(1, nil)
	g.player.pos = core.NewDot(3, 20)
	parked := addEnemy(g, playerStart, 0)
	shooter := addEnemy(g, core.NewDot(0, 29), 2)
	shooter.missiles[0] = missile{pos: core.NewDot(4, 22), dir: core.Up}

	shooter.moveMissiles()
	g.checkCollisions()

	require.Equal(t, 2, g.lives)
	assert.Equal(t, core.NewDot(3, 14), g.player.pos, "nearest free spot to the start")
	assert.False(t, g.player.box().Intersects(parked.box()))

	blocked := g.blocked(&g.player)
	assert.False(t, blocked(g.player.pos))
	assert.False(t, blocked(g.player.pos.Add(core.Up)), "player can drive away")
	assert.True(t, parked.forward(g.blocked(parked)), "enemy can drive away")
}

func TestRespawnAtStartWhenFree(t *testing.T) {
	g := newGame(1, nil)
	addEnemy(g, core.NewDot(3, 18), 0)
	assert.Equal(t, playerStart, g.respawnPoint())
}

func TestLastLifeEndsGame(t *testing.T) {
	g := newGame(1, nil)
	g.lives = 1
	e := addEnemy(g, core.NewDot(0, 29), 2)
	e.missiles[0] = missile{pos: core.NewDot(3, 18), dir: core.Up}

	e.moveMissiles()
	g.checkCollisions()

	assert.Equal(t, PhaseGameOver, g.phase)
	assert.True(t, g.State().GameOver)
}

func TestFirstFrameSpawnsEnemy(t *testing.T) {
	g := newGame(99, nil)
	g.Step(core.Input{})

	snap := g.Snapshot()
	require.Len(t, snap.Enemies, 1)
	assert.Contains(t, spawnPoints[:], snap.Enemies[0])
}

func TestSpawnUsesFreeOrigins(t *testing.T) {
	g := newGame(3, nil)
	g.spawn()
	g.spawn()
	require.Equal(t, 2, g.enemyCount)
	assert.NotEqual(t, g.enemies[0].origin, g.enemies[1].origin)

	g.spawn()
	g.spawn()
	require.Equal(t, 4, g.enemyCount)
	g.spawn()
	assert.Equal(t, 4, g.enemyCount, "no origin left")
}

func TestStageTables(t *testing.T) {
	count := func(table []stage, s stage) int {
		n := 0
		for _, v := range table {
			if v == s {
				n++
			}
		}
		return n
	}

	assert.Equal(t, 4, count(aggressiveStages[:], stageFire))
	assert.Equal(t, 2, count(normalStages[:], stageFire))
	assert.Equal(t, 3, count(normalStages[:], stageMove))
	assert.Equal(t, 1, count(normalStages[:], stageNone))
}

func TestCanHitPlayer(t *testing.T) {
	g := newGame(1, nil)

	below := addEnemy(g, core.NewDot(3, 8), 0)
	below.rotate(core.Down)
	assert.True(t, g.canHitPlayer(below))
	below.rotate(core.Up)
	assert.False(t, g.canHitPlayer(below))

	side := addEnemy(g, core.NewDot(0, 16), 1)
	assert.True(t, g.canHitPlayer(side), "facing right on the same row")
	side.pos = core.NewDot(0, 18)
	assert.False(t, g.canHitPlayer(side))
}

func TestDraw(t *testing.T) {
	g := newGame(1, nil)
	addEnemy(g, core.NewDot(0, 29), 2)
	g.Draw()

	s := g.Screen()
	assert.Equal(t, core.Green, s.Get(3, 16))
	assert.Equal(t, core.Red, s.Get(0, 29))
	assert.Equal(t, core.Pink, s.Get(3, 0))
	assert.Equal(t, core.Pink, s.Get(3, 2))
	assert.Equal(t, core.Black, s.Get(3, 3))
}

func TestDeterminism(t *testing.T) {
	script := make([]core.Input, 600)
	for i := range script {
		switch i % 11 {
		case 0:
			script[i].A = true
		case 3:
			script[i].Y = -1
		case 6:
			script[i].X = 1
		case 8:
			script[i].Y = 1
		}
	}

	g1 := newGame(2024, nil)
	g2 := newGame(2024, nil)
	for _, in := range script {
		g1.Step(in)
		g2.Step(in)
	}
	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestRunStopsOnCancel(t *testing.T) {
	rig := coretest.NewRig(4)
	g := newGame(1, rig)

	err := g.Run(rig.Ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 4, rig.Display.Count())
	assert.Equal(t, []uint64{100, 100, 100, 100}, rig.Timer.Sleeps)
}

func TestRunSplattersUntilPress(t *testing.T) {
	rig := coretest.NewRig(0)
	rig.Controller.PressAfter = 3
	g := newGame(1, rig)
	g.phase = PhaseGameOver

	require.NoError(t, g.Run(rig.Ctx))
	assert.Equal(t, 2, rig.Display.Count())
	assert.Equal(t, []uint64{200, 200}, rig.Timer.Sleeps)
}
