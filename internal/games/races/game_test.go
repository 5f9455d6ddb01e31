package races

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

func TestNewGame(t *testing.T) {
	g := newGame(1, nil)
	snap := g.Snapshot()

	assert.Equal(t, carStart, snap.Car)
	assert.Equal(t, 3, snap.Lives)
	assert.Equal(t, 5, snap.Ammo)
	assert.Equal(t, core.NewDot(3, 10), snap.Racer)
	assert.Equal(t, racerHealth, snap.RacerHealth)
	assert.Nil(t, snap.Powerup)
}

func TestSteerEveryOtherFrame(t *testing.T) {
	g := newGame(1, nil)

	g.Step(core.Input{X: 1})
	assert.Equal(t, int8(4), g.car.X)
	g.Step(core.Input{X: 1})
	assert.Equal(t, int8(4), g.car.X)
	g.Step(core.Input{X: 1})
	assert.Equal(t, int8(5), g.car.X)

	g.car.X = carMaxX
	g.updateStep = 0
	g.Step(core.Input{X: 1})
	assert.Equal(t, int8(carMaxX), g.car.X)
}

func TestVerticalMovesWithRoad(t *testing.T) {
	g := newGame(1, nil)

	for i := 0; i < roadStep-1; i++ {
		g.Step(core.Input{Y: -1})
	}
	assert.Equal(t, carStart.Y, g.car.Y)
	assert.Zero(t, g.roadAnimation)

	g.Step(core.Input{Y: -1})
	assert.Equal(t, carStart.Y-1, g.car.Y)
	assert.Equal(t, 1, g.roadAnimation)
}

func TestVerticalBounds(t *testing.T) {
	g := newGame(1, nil)
	g.car.Y = carMaxY
	g.updateStep = roadStep - 1

	g.Step(core.Input{Y: 1})
	assert.Equal(t, int8(carMaxY), g.car.Y)
}

func TestFireUsesAmmo(t *testing.T) {
	g := newGame(1, nil)

	g.Step(core.Input{A: true})
	snap := g.Snapshot()
	assert.Equal(t, []core.Dot{core.NewDot(3, 23)}, snap.Bullets, "bullet spawns above the nose and moves at once")
	assert.Equal(t, 4, snap.Ammo)

	g.ammo = 0
	g.fire()
	assert.Equal(t, 1, g.bulletCount)
}

func TestFireCappedByArena(t *testing.T) {
	g := newGame(1, nil)
	g.ammo = 10
	for range maxBullets + 2 {
		g.fire()
	}
	assert.Equal(t, maxBullets, g.bulletCount)
	assert.Equal(t, 10-maxBullets, g.ammo)
}

func TestBulletsLeaveTop(t *testing.T) {
	g := newGame(1, nil)
	g.bullets[0] = core.NewDot(3, 0)
	g.bulletCount = 1

	g.updateBullets()
	assert.Zero(t, g.bulletCount)
}

func TestBulletDestroysObstacle(t *testing.T) {
	g := newGame(1, nil)
	g.obstacles[0] = core.NewDot(2, 20)
	g.obstacleCount = 1
	g.bullets[0] = core.NewDot(3, 22)
	g.bulletCount = 1

	g.updateBullets()
	g.checkCollisions()

	assert.Zero(t, g.obstacleCount)
	assert.Zero(t, g.bulletCount)
	assert.Equal(t, 1, g.score)
}

func TestBulletsResolveWhileInvulnerable(t *testing.T) {
	g := newGame(1, nil)
	g.invulnerable = 5
	g.obstacles[0] = core.NewDot(4, 15)
	g.obstacleCount = 1
	g.bullets[0] = core.NewDot(5, 16)
	g.bulletCount = 1

	g.checkCollisions()
	assert.Zero(t, g.obstacleCount)
	assert.Equal(t, 4, g.invulnerable)
}

func TestRacerTakesThreeHits(t *testing.T) {
	g := newGame(1, nil)

	for hit := 1; hit <= racerHealth; hit++ {
		g.bullets[0] = core.NewDot(3, 11)
		g.bulletCount = 1
		g.updateBullets()
		g.checkCollisions()
		require.Zero(t, g.bulletCount, "hit %d", hit)
	}

	assert.Equal(t, 1, g.score)
	assert.Equal(t, racerHealth, g.racerHealth)
	assert.Equal(t, int8(0), g.racer.Y)
	assert.GreaterOrEqual(t, g.racer.X, int8(1))
	assert.LessOrEqual(t, g.racer.X, int8(5))
}

func TestBulletMissesRacerGap(t *testing.T) {
	g := newGame(1, nil)
	// Row y-1 of the car is only its center column.
	g.bullets[0] = core.NewDot(2, 9)
	g.bulletCount = 1

	g.checkCollisions()
	assert.Equal(t, 1, g.bulletCount)
	assert.Equal(t, racerHealth, g.racerHealth)
}

func TestObstacleCostsLifeThenInvulnerable(t *testing.T) {
	g := newGame(1, nil)
	g.obstacles[0] = core.NewDot(2, 27)
	g.obstacleCount = 1

	g.checkCollisions()
	assert.Equal(t, 2, g.lives)
	assert.Equal(t, 20, g.invulnerable)

	g.checkCollisions()
	assert.Equal(t, 2, g.lives)
	assert.Equal(t, 19, g.invulnerable)
}

func TestObstacleBesideCarIsSafe(t *testing.T) {
	g := newGame(1, nil)
	// One lane to the left of the car.
	g.obstacles[0] = core.NewDot(0, 26)
	g.obstacleCount = 1
	g.car = core.NewDot(3, 28)

	g.checkCollisions()
	assert.Equal(t, 3, g.lives)
}

func TestRacerContactCostsLife(t *testing.T) {
	g := newGame(1, nil)
	g.racer = core.NewDot(4, 26)

	g.checkCollisions()
	assert.Equal(t, 2, g.lives)
}

func TestPowerupRestoresAmmo(t *testing.T) {
	g := newGame(1, nil)
	g.ammo = 3
	g.powerup = core.NewDot(4, 24)
	g.hasPowerup = true

	g.updatePowerup()
	assert.False(t, g.hasPowerup)
	assert.Equal(t, 4, g.ammo)

	g.ammo = g.maxAmmo
	g.powerup = core.NewDot(3, 26)
	g.hasPowerup = true
	g.updatePowerup()
	assert.Equal(t, g.maxAmmo, g.ammo, "ammo never exceeds the start amount")
}

func TestPowerupFallsOff(t *testing.T) {
	g := newGame(1, nil)
	g.powerup = core.NewDot(1, core.Height-1)
	g.hasPowerup = true

	g.updatePowerup()
	assert.False(t, g.hasPowerup)
	assert.Equal(t, 5, g.ammo)
}

func TestRacerBlockedByObstacle(t *testing.T) {
	g := newGame(1, nil)
	g.obstacles[0] = core.NewDot(3, 11)
	g.obstacleCount = 1

	for range 50 {
		g.updateRacer()
	}
	assert.Equal(t, int8(10), g.racer.Y)
}

func TestRacerWrapsToTop(t *testing.T) {
	g := newGame(1, nil)
	g.racer.Y = core.Height - 1

	for i := 0; i < 200 && g.racer.Y == core.Height-1; i++ {
		g.updateRacer()
	}
	assert.Equal(t, int8(0), g.racer.Y)
}

func TestObstaclesScrollAndExpire(t *testing.T) {
	g := newGame(1, nil)
	g.obstacles[0] = core.NewDot(1, 5)
	g.obstacles[1] = core.NewDot(4, core.Height-1)
	g.obstacleCount = 2

	g.updateObstacles()
	require.Equal(t, 1, g.obstacleCount)
	assert.Equal(t, core.NewDot(1, 6), g.obstacles[0])
}

func TestRoadScrolls(t *testing.T) {
	g := newGame(1, nil)
	g.drawRoad()
	assert.Equal(t, core.Brick, g.screen.Get(7, 0))
	assert.Equal(t, core.Brick, g.screen.Get(7, 3))
	assert.Equal(t, core.Black, g.screen.Get(7, 4))

	g.roadAnimation = 1
	g.screen.Clear()
	g.drawRoad()
	assert.Equal(t, core.Black, g.screen.Get(7, 0))
	assert.Equal(t, core.Brick, g.screen.Get(7, 4))
}

func TestHUDNudgesNarrowDigits(t *testing.T) {
	g := newGame(1, nil)
	g.score = 11
	g.drawHUD()
	assert.Equal(t, core.Yellow, g.screen.Get(2, 0), "tens 1 drawn at x=1")
	assert.Equal(t, core.Yellow, g.screen.Get(7, 0), "ones 1 drawn at x=6")
	assert.Equal(t, core.Green, g.screen.Get(3, 2))
	assert.Equal(t, core.Pink, g.screen.Get(4, 4))
}

func TestCarBlinksWhileInvulnerable(t *testing.T) {
	g := newGame(1, nil)

	g.invulnerable = 8
	g.Draw()
	assert.Equal(t, core.Black, g.Screen().Get(3, 28))

	g.invulnerable = 4
	g.Draw()
	assert.Equal(t, core.Green, g.Screen().Get(3, 28))
	assert.Equal(t, core.Blue, g.Screen().Get(3, 10))
}

func TestDeterminism(t *testing.T) {
	script := make([]core.Input, 1500)
	for i := range script {
		switch i % 13 {
		case 0:
			script[i].A = true
		case 2, 3:
			script[i].X = -1
		case 7, 8:
			script[i].X = 1
		case 10:
			script[i].Y = -1
		}
	}

	g1 := newGame(31337, nil)
	g2 := newGame(31337, nil)
	for _, in := range script {
		g1.Step(in)
		g2.Step(in)
	}
	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestRunStopsOnCancel(t *testing.T) {
	rig := coretest.NewRig(3)
	g := newGame(1, rig)

	err := g.Run(rig.Ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, rig.Display.Count())
	assert.Equal(t, []uint64{20, 20, 20}, rig.Timer.Sleeps)
}

func TestRunGameOver(t *testing.T) {
	rig := coretest.NewRig(0)
	rig.Controller.PressAfter = 1
	g := newGame(1, rig)
	g.lives = 1
	g.racer = g.car

	require.NoError(t, g.Run(rig.Ctx))
	assert.True(t, g.State().GameOver)
	assert.Equal(t, 6, rig.Display.Count())
	assert.Equal(t, []uint64{200, 200, 200, 200, 200, 200}, rig.Timer.Sleeps)
}
