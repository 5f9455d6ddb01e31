// Package races implements a vertical road racer with a gun.
package races

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/led-arcade/internal/config"
	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "races"

// Banner is the RACES title screen.
var Banner = [core.Width]uint32{
	0,
	0,
	0b01100001000111001110011100000000,
	0b01010010100100001000010000000000,
	0b01100011100100001110011100000000,
	0b01010010100100001000000100000000,
	0b01010010100111001110011100000000,
	0,
}

// Frame cadence. The world scrolls every roadStep frames; slow entities
// update once per updateCycle; the car slides sideways every sideStep.
const (
	roadStep    = 10
	updateCycle = roadStep * 2
	sideStep    = roadStep / 4
)

// Arena sizes.
const (
	maxObstacles = 2
	maxBullets   = 4
	racerHealth  = 3
)

// Car bounds; the position is the car's bottom-center pixel.
const (
	carMinX = 1
	carMaxX = core.Width - 2
	carMinY = 3
	carMaxY = core.Height - 1
)

var carStart = core.NewDot(3, 28)

// Phase represents the current game phase.
type Phase int

const (
	PhaseRacing Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseRacing:
		return "racing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Game implements Races.
type Game struct {
	hw         core.Hardware
	prng       *core.Prng
	cfg        config.RacesConfig
	frameDelay uint64
	log        *log.Logger

	screen  core.FrameBuffer
	scratch core.FrameBuffer // Car footprint for hit tests

	car          core.Dot
	lives        int
	ammo         int
	maxAmmo      int
	invulnerable int

	obstacles     [maxObstacles]core.Dot // Top-left of a 2x2 block
	obstacleCount int
	bullets       [maxBullets]core.Dot
	bulletCount   int

	powerup    core.Dot // Top of a 2-pixel pickup
	hasPowerup bool

	racer       core.Dot // Bottom-center, like the player car
	racerHealth int

	updateStep    int
	roadAnimation int
	score         int // Cars and obstacles destroyed
	tick          uint64
	phase         Phase
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Races", Rank: 3, Banner: Banner}, func(env registry.Env) registry.Game {
		return New(env)
	})
}

// New creates a race with the car at the bottom and one rival ahead.
func New(env registry.Env) *Game {
	cfg := env.Config
	return &Game{
		hw:          env.HW,
		prng:        env.Prng,
		cfg:         cfg.Races,
		frameDelay:  cfg.FrameDelay(cfg.Races.FrameMs),
		log:         env.Log().With("game", ID),
		car:         carStart,
		lives:       cfg.Races.Lives,
		ammo:        cfg.Races.Ammo,
		maxAmmo:     cfg.Races.Ammo,
		racer:       core.NewDot(3, 10),
		racerHealth: racerHealth,
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Races" }

// State returns the current score and status.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.phase == PhaseGameOver}
}

// Step advances one frame.
func (g *Game) Step(in core.Input) {
	if g.phase == PhaseGameOver {
		return
	}
	g.tick++

	if in.Pressed() {
		g.fire()
	}
	g.spawnObstacle()
	g.spawnPowerup()

	if g.updateStep%sideStep == 0 && in.X != 0 {
		if nx := int(g.car.X) + int(in.X); nx >= carMinX && nx <= carMaxX {
			g.car.X = int8(nx)
		}
	}

	g.updateStep = (g.updateStep + 1) % updateCycle
	if g.updateStep%roadStep == 0 {
		if in.Y != 0 {
			if ny := int(g.car.Y) + int(in.Y); ny >= carMinY && ny <= carMaxY {
				g.car.Y = int8(ny)
			}
		}
		g.updateObstacles()
		g.roadAnimation = (g.roadAnimation + 1) % core.Height
	}
	if g.updateStep == 0 {
		g.updatePowerup()
		g.updateRacer()
	}

	g.updateBullets()
	g.checkCollisions()

	if g.lives <= 0 {
		g.phase = PhaseGameOver
		g.log.Info("game over", "score", g.score)
	}
}

// fire shoots from just above the car's nose while ammo lasts.
func (g *Game) fire() {
	if g.bulletCount >= maxBullets || g.ammo <= 0 {
		return
	}
	g.bullets[g.bulletCount] = g.car.Add(core.NewDot(0, -4))
	g.bulletCount++
	g.ammo--
}

func (g *Game) spawnObstacle() {
	if g.obstacleCount < maxObstacles && g.prng.NextRange(g.cfg.ObstacleOdds) == 0 {
		g.obstacles[g.obstacleCount] = core.NewDot(g.prng.NextRange(6), 0)
		g.obstacleCount++
	}
}

func (g *Game) spawnPowerup() {
	if !g.hasPowerup && g.prng.NextRange(g.cfg.PowerupOdds) == 0 {
		g.powerup = core.NewDot(g.prng.NextRange(5)+1, 0)
		g.hasPowerup = true
	}
}

func (g *Game) updateObstacles() {
	for i := 0; i < g.obstacleCount; {
		g.obstacles[i].Y++
		if int(g.obstacles[i].Y) >= core.Height {
			g.removeObstacle(i)
			continue
		}
		i++
	}
}

func (g *Game) removeObstacle(i int) {
	g.obstacleCount--
	g.obstacles[i] = g.obstacles[g.obstacleCount]
}

// updatePowerup drops the pickup one row and hands back a round if the car
// catches it.
func (g *Game) updatePowerup() {
	if !g.hasPowerup {
		return
	}
	g.powerup.Y++
	p, c := g.powerup, g.car
	if core.Abs(int(p.X)-int(c.X)) <= 1 && p.Y >= c.Y-3 && p.Y <= c.Y {
		g.hasPowerup = false
		g.ammo = min(g.ammo+1, g.maxAmmo)
		g.log.Debug("powerup collected", "ammo", g.ammo)
		return
	}
	if int(p.Y) >= core.Height {
		g.hasPowerup = false
	}
}

// updateRacer drifts the rival car down with 1-in-4 odds unless an obstacle
// is in the way, and wraps it back to the top.
func (g *Game) updateRacer() {
	if g.prng.NextRange(4) == 0 {
		ny := g.racer.Y + 1
		if !g.obstacleAt(g.racer.X, ny) {
			g.racer.Y = ny
		}
	}
	if int(g.racer.Y) >= core.Height {
		g.respawnRacer()
	}
}

// obstacleAt reports whether a 2x2 block covers (x, y) or (x+1, y) or the
// row below. It is the rival's look-ahead test.
func (g *Game) obstacleAt(x, y int8) bool {
	for _, o := range g.obstacles[:g.obstacleCount] {
		if (o.X == x || o.X == x+1) && (o.Y == y || o.Y == y+1) {
			return true
		}
	}
	return false
}

// respawnRacer puts the rival back at the top in a lane free of obstacles.
// After a few tries it takes the last roll.
func (g *Game) respawnRacer() {
	g.racer.Y = 0
	for range 8 {
		g.racer.X = int8(g.prng.NextRange(5) + 1)
		if !g.obstacleAt(g.racer.X, 0) {
			return
		}
	}
}

func (g *Game) updateBullets() {
	for i := 0; i < g.bulletCount; {
		g.bullets[i].Y--
		if g.bullets[i].Y < 0 {
			g.removeBullet(i)
			continue
		}
		i++
	}
}

func (g *Game) removeBullet(i int) {
	g.bulletCount--
	g.bullets[i] = g.bullets[g.bulletCount]
}

// checkCollisions costs a life when an obstacle or the rival touches the car,
// unless the car is still invulnerable. Bullets resolve every frame.
func (g *Game) checkCollisions() {
	g.scratch.Clear()
	g.scratch.DrawFigure(int(g.car.X)-1, int(g.car.Y)-3, core.CarSprite, core.Green)

	if g.invulnerable > 0 {
		g.invulnerable--
	} else if g.carHit() {
		g.lives--
		g.invulnerable = g.cfg.InvulnerableFrames
		g.log.Debug("life lost", "lives", g.lives)
	}

	for i := 0; i < g.bulletCount; {
		if g.resolveBullet(g.bullets[i]) {
			g.removeBullet(i)
			continue
		}
		i++
	}
}

func (g *Game) carHit() bool {
	for _, o := range g.obstacles[:g.obstacleCount] {
		if touches(&g.scratch, int(o.X), int(o.Y), core.BlockSprite) {
			return true
		}
	}
	return touches(&g.scratch, int(g.racer.X)-1, int(g.racer.Y)-3, core.CarSprite)
}

// resolveBullet applies b to the first obstacle or the rival it hits.
func (g *Game) resolveBullet(b core.Dot) bool {
	for i, o := range g.obstacles[:g.obstacleCount] {
		if core.NewRect(int(o.X), int(o.Y), 2, 2).ContainsDot(b) {
			g.removeObstacle(i)
			g.addScore()
			return true
		}
	}

	if !core.CarSprite.Bit(int(b.X)-int(g.racer.X)+1, int(b.Y)-int(g.racer.Y)+3) {
		return false
	}
	g.racerHealth--
	if g.racerHealth <= 0 {
		g.addScore()
		g.log.Debug("racer destroyed", "score", g.score)
		g.respawnRacer()
		g.racerHealth = racerHealth
	}
	return true
}

func (g *Game) addScore() {
	g.score = (g.score + 1) % 100
}

// touches reports whether any set pixel of f at (x, y) lands on a lit cell
// of layer. Off-grid pixels never touch.
func touches(layer *core.FrameBuffer, x, y int, f core.Figure) bool {
	return !f.Draw(x, y, core.Black, func(px, py int, _ core.Color) bool {
		return layer.Get(px, py) == core.Black
	})
}

// Draw composes the screen.
func (g *Game) Draw() {
	g.screen.Clear()
	g.drawRoad()
	for _, o := range g.obstacles[:g.obstacleCount] {
		g.screen.DrawFigure(int(o.X), int(o.Y), core.BlockSprite, core.DarkGreen)
	}
	if g.hasPowerup {
		g.screen.Set(int(g.powerup.X), int(g.powerup.Y), core.Pink)
		g.screen.Set(int(g.powerup.X), int(g.powerup.Y)+1, core.Pink)
	}
	for _, b := range g.bullets[:g.bulletCount] {
		g.screen.Set(int(b.X), int(b.Y), core.Red)
	}
	g.screen.DrawFigure(int(g.racer.X)-1, int(g.racer.Y)-3, core.CarSprite, core.Blue)
	if g.invulnerable == 0 || (g.invulnerable/4)%2 != 0 {
		g.screen.DrawFigure(int(g.car.X)-1, int(g.car.Y)-3, core.CarSprite, core.Green)
	}
	g.drawHUD()
}

// drawRoad paints the road edges as scrolling four-cell brick dashes.
func (g *Game) drawRoad() {
	for y := range core.Height {
		c := core.Black
		if (y/4)%2 == 0 {
			c = core.Brick
		}
		row := (y + g.roadAnimation) % core.Height
		g.screen.Set(0, row, c)
		g.screen.Set(core.Width-1, row, c)
	}
}

// drawHUD shows the score with narrow ones nudged right, lives and ammo.
func (g *Game) drawHUD() {
	tens, ones := g.score/10, g.score%10
	tensX, onesX := 0, 5
	if tens == 1 {
		tensX = 1
	}
	if ones == 1 {
		onesX = 6
	}
	g.screen.DrawFigure(tensX, 0, core.Digit(tens), core.Yellow)
	g.screen.DrawFigure(onesX, 0, core.Digit(ones), core.Yellow)
	core.DrawMeter(&g.screen, 3, g.lives, core.Green)
	core.DrawMeter(&g.screen, 4, g.ammo, core.Pink)
}

// Screen returns the last composed frame.
func (g *Game) Screen() *core.FrameBuffer {
	return &g.screen
}

// Run plays until the game-over screen is dismissed.
func (g *Game) Run(ctx context.Context) error {
	g.log.Info("game started")
	for {
		g.Step(core.ReadInput(ctx, g.hw.Controller))
		if g.phase == PhaseGameOver {
			return g.gameOver(ctx)
		}
		g.Draw()
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, g.frameDelay); err != nil {
			return err
		}
	}
}

// gameOver blinks the score three times, then waits for a press.
func (g *Game) gameOver(ctx context.Context) error {
	blink := uint64(g.cfg.BlinkMs)
	for range 3 {
		g.screen.Clear()
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, blink); err != nil {
			return err
		}

		g.drawHUD()
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, blink); err != nil {
			return err
		}
	}
	return g.hw.WaitPress(ctx, uint64(g.cfg.PollMs))
}

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick         uint64
	Score        int
	Lives        int
	Ammo         int
	Car          core.Dot
	Racer        core.Dot
	RacerHealth  int
	Obstacles    []core.Dot
	Bullets      []core.Dot
	Powerup      *core.Dot
	Invulnerable int
	Phase        Phase
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:         g.tick,
		Score:        g.score,
		Lives:        g.lives,
		Ammo:         g.ammo,
		Car:          g.car,
		Racer:        g.racer,
		RacerHealth:  g.racerHealth,
		Obstacles:    append([]core.Dot(nil), g.obstacles[:g.obstacleCount]...),
		Bullets:      append([]core.Dot(nil), g.bullets[:g.bulletCount]...),
		Invulnerable: g.invulnerable,
		Phase:        g.phase,
	}
	if g.hasPowerup {
		p := g.powerup
		s.Powerup = &p
	}
	return s
}
