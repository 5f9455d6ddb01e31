// Package tanks implements a top-down tank battle against AI tanks.
package tanks

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/led-arcade/internal/config"
	"github.com/vovakirdan/led-arcade/internal/core"
	"github.com/vovakirdan/led-arcade/internal/registry"
)

// ID is the registry identifier.
const ID = "tanks"

// Banner is the TANKS title screen.
var Banner = [core.Width]uint32{
	0,
	0,
	0b01110001000101001010011100000000,
	0b00100010100111001010010000000000,
	0b00100011100111001100011100000000,
	0b00100010100111001010000100000000,
	0b00100010100101001010011100000000,
	0,
}

// playerStart is where the player tank spawns and respawns.
var playerStart = core.NewDot(3, 16)

// spawnPoints are the four enemy entry corners.
var spawnPoints = [4]core.Dot{
	core.NewDot(0, 6),
	core.NewDot(5, 6),
	core.NewDot(0, 29),
	core.NewDot(5, 29),
}

// minEnemies is the live count below which the AI spawns instead of acting.
const minEnemies = 2

// stage is one AI decision applied to every enemy.
type stage int

const (
	stageMove stage = iota
	stageRotate
	stageFire
	stageNone
)

func (s stage) String() string {
	switch s {
	case stageMove:
		return "move"
	case stageRotate:
		return "rotate"
	case stageFire:
		return "fire"
	default:
		return "none"
	}
}

// Stage tables. Weights are repetition counts.
var (
	aggressiveStages = [...]stage{stageFire, stageFire, stageFire, stageFire, stageMove, stageMove, stageRotate, stageRotate, stageNone}
	normalStages     = [...]stage{stageFire, stageFire, stageMove, stageMove, stageMove, stageRotate, stageRotate, stageRotate, stageNone}
)

// Phase represents the current game phase.
type Phase int

const (
	PhasePlaying Phase = iota
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Game implements Tanks.
type Game struct {
	hw          core.Hardware
	prng        *core.Prng
	cfg         config.TanksConfig
	frameDelay  uint64
	progressive bool
	log         *log.Logger

	screen    core.FrameBuffer
	obstacles core.FrameBuffer // Scratch layer for movement tests

	player     tank
	enemies    [config.MaxTankEnemies]tank
	enemyCount int
	maxEnemies int

	lives int
	score int // Kills, 0-99
	step  int // AI accumulator
	tick  uint64
	phase Phase
}

func init() {
	registry.Register(registry.GameInfo{ID: ID, Title: "Tanks", Rank: 2, Banner: Banner}, func(env registry.Env) registry.Game {
		return New(env)
	})
}

// New creates a game with the player at the start point and no enemies.
func New(env registry.Env) *Game {
	cfg := env.Config
	return &Game{
		hw:          env.HW,
		prng:        env.Prng,
		cfg:         cfg.Tanks,
		frameDelay:  cfg.FrameDelay(cfg.Tanks.FrameMs),
		progressive: cfg.Progressive(),
		log:         env.Log().With("game", ID),
		player:      newTank(playerStart, -1, cfg.Tanks.Missiles),
		maxEnemies:  core.Clamp(cfg.Tanks.Enemies, 1, config.MaxTankEnemies),
		lives:       cfg.Tanks.Lives,
		step:        cfg.Tanks.AIRound, // AI acts on the first frame
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Tanks" }

// State returns the current score and status.
func (g *Game) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.phase == PhaseGameOver}
}

// Step advances one frame: player input, missiles, hits, then the AI.
func (g *Game) Step(in core.Input) {
	if g.phase == PhaseGameOver {
		return
	}
	g.tick++

	if in.Joystick || in.A {
		g.player.fire()
	}
	g.player.move(in.Direction(), g.blocked(&g.player), false)

	g.player.moveMissiles()
	for i := range g.enemies[:g.enemyCount] {
		g.enemies[i].moveMissiles()
	}
	g.checkCollisions()
	if g.phase == PhaseGameOver {
		return
	}

	if g.step >= g.cfg.AIRound {
		g.step = 0
		g.ai()
	}
	g.step += 1 + g.speedBonus()
}

func (g *Game) speedBonus() int {
	if !g.progressive {
		return 0
	}
	return g.score / 10
}

// blocked returns the movement test for mover: off-grid, the score header,
// or any other tank's 2x2 box.
func (g *Game) blocked(mover *tank) func(core.Dot) bool {
	g.obstacles.Fill(core.Brick)
	g.obstacles.ClearRange(core.FieldTop, core.Height)
	if mover != &g.player {
		g.obstacles.DrawFigure(int(g.player.pos.X), int(g.player.pos.Y), core.BlockSprite, core.Green)
	}
	for i := range g.enemies[:g.enemyCount] {
		if e := &g.enemies[i]; e != mover {
			g.obstacles.DrawFigure(int(e.pos.X), int(e.pos.Y), core.BlockSprite, core.Red)
		}
	}
	return func(d core.Dot) bool {
		return g.obstacles.Collides(int(d.X), int(d.Y), core.BlockSprite)
	}
}

// checkCollisions resolves enemy missiles against the player and player
// missiles against enemies. Destroyed enemies are swap-removed.
func (g *Game) checkCollisions() {
	for i := range g.enemies[:g.enemyCount] {
		e := &g.enemies[i]
		for j := range e.missiles[:e.slots] {
			m := &e.missiles[j]
			if m.visible() && g.player.collides(m.pos) {
				m.hide()
				g.player.hit()
			}
		}
	}

	for j := range g.player.missiles[:g.player.slots] {
		m := &g.player.missiles[j]
		if !m.visible() {
			continue
		}
		for i := range g.enemies[:g.enemyCount] {
			e := &g.enemies[i]
			if !e.dead() && e.collides(m.pos) {
				m.hide()
				e.hit()
				if e.dead() {
					g.score = (g.score + 1) % 100
					g.log.Debug("enemy destroyed", "origin", e.origin, "score", g.score)
				}
				break
			}
		}
	}

	for i := 0; i < g.enemyCount; {
		if g.enemies[i].dead() {
			g.enemyCount--
			g.enemies[i] = g.enemies[g.enemyCount]
			continue
		}
		i++
	}

	if g.player.dead() {
		g.lives--
		g.log.Debug("life lost", "lives", g.lives)
		if g.lives <= 0 {
			g.phase = PhaseGameOver
			g.log.Info("game over", "score", g.score)
			return
		}
		g.player = newTank(g.respawnPoint(), -1, g.cfg.Missiles)
	}
}

// respawnPoint returns playerStart, or the free spot nearest to it when an
// enemy box covers the start. Ties go to the topmost, then leftmost, spot.
func (g *Game) respawnPoint() core.Dot {
	best, bestDist := playerStart, -1
	for y := core.FieldTop; y <= core.Height-2; y++ {
		for x := 0; x <= core.Width-2; x++ {
			d := core.NewDot(x, y)
			if g.enemyAt(core.NewRect(x, y, 2, 2)) {
				continue
			}
			if dist := d.Manhattan(playerStart); bestDist < 0 || dist < bestDist {
				best, bestDist = d, dist
			}
		}
	}
	if best != playerStart {
		g.log.Debug("start blocked", "respawn", best)
	}
	return best
}

func (g *Game) enemyAt(box core.Rect) bool {
	for i := range g.enemies[:g.enemyCount] {
		if g.enemies[i].box().Intersects(box) {
			return true
		}
	}
	return false
}

// ai spawns while fewer than two enemies are alive, otherwise rolls one stage
// from the weighted table and applies it to every enemy.
func (g *Game) ai() {
	if g.enemyCount < minEnemies && g.enemyCount < g.maxEnemies {
		g.spawn()
		return
	}

	st := g.pickStage()
	g.log.Debug("ai", "stage", st, "enemies", g.enemyCount)
	for i := range g.enemies[:g.enemyCount] {
		e := &g.enemies[i]
		switch st {
		case stageMove:
			if !e.forward(g.blocked(e)) {
				g.randomTurn(e)
			}
		case stageRotate:
			g.randomTurn(e)
		case stageFire:
			if g.canHitPlayer(e) || g.prng.NextRange(10) == 0 {
				e.fire()
			}
		}
	}
}

func (g *Game) pickStage() stage {
	table := normalStages[:]
	if g.lives <= 1 {
		table = aggressiveStages[:]
	}
	return table[g.prng.NextRange(len(table))]
}

func (g *Game) randomTurn(e *tank) {
	if g.prng.NextRange(2) == 0 {
		e.turn()
	} else {
		e.turnBack()
	}
}

// canHitPlayer reports whether e's heading points straight at the player
// along a shared row or column of the tank centers.
func (g *Game) canHitPlayer(e *tank) bool {
	dir := e.direction()
	c := e.pos.Add(core.NewDot(1, 1))
	p := g.player.pos.Add(core.NewDot(1, 1))
	switch {
	case dir.X != 0:
		return c.Y == p.Y && ((dir.X > 0 && c.X < p.X) || (dir.X < 0 && c.X > p.X))
	case dir.Y != 0:
		return c.X == p.X && ((dir.Y > 0 && c.Y < p.Y) || (dir.Y < 0 && c.Y > p.Y))
	}
	return false
}

// spawn places an enemy on a free spawn point. Points farther from the
// player are proportionally more likely.
func (g *Game) spawn() {
	var (
		free    [len(spawnPoints)]int
		weights [len(spawnPoints)]int
		n       int
		total   int
	)
	blocked := g.blocked(nil)
	for idx, p := range spawnPoints {
		if g.originTaken(idx) || blocked(p) {
			continue
		}
		free[n] = idx
		weights[n] = p.Manhattan(g.player.pos) + 1
		total += weights[n]
		n++
	}
	if n == 0 || g.enemyCount >= len(g.enemies) {
		return
	}

	r := g.prng.NextRange(total)
	pick := free[n-1]
	for i := range n {
		if r < weights[i] {
			pick = free[i]
			break
		}
		r -= weights[i]
	}

	g.enemies[g.enemyCount] = newTank(spawnPoints[pick], pick, g.cfg.Missiles)
	g.enemyCount++
	g.log.Debug("enemy spawned", "origin", pick, "enemies", g.enemyCount)
}

func (g *Game) originTaken(idx int) bool {
	for i := range g.enemies[:g.enemyCount] {
		if g.enemies[i].origin == idx {
			return true
		}
	}
	return false
}

// Draw composes the screen.
func (g *Game) Draw() {
	g.screen.Clear()
	g.drawTank(&g.player, core.Green)
	for i := range g.enemies[:g.enemyCount] {
		g.drawTank(&g.enemies[i], core.Red)
	}
	core.DrawScore(&g.screen, g.score, 5, core.Green)
	core.DrawMeter(&g.screen, 3, g.lives, core.Pink)
	core.DrawDivider(&g.screen, core.Pink)
}

func (g *Game) drawTank(t *tank, c core.Color) {
	g.screen.DrawFigure(int(t.pos.X), int(t.pos.Y), t.figure, c)
	for i := range t.missiles[:t.slots] {
		if m := &t.missiles[i]; m.visible() {
			g.screen.Set(int(m.pos.X), int(m.pos.Y), core.Red)
		}
	}
}

// Screen returns the last composed frame.
func (g *Game) Screen() *core.FrameBuffer {
	return &g.screen
}

// Run plays until the game-over screen is dismissed.
func (g *Game) Run(ctx context.Context) error {
	g.log.Info("game started")
	for g.phase != PhaseGameOver {
		g.Step(core.ReadInput(ctx, g.hw.Controller))
		g.Draw()
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, g.frameDelay); err != nil {
			return err
		}
	}
	return g.gameOver(ctx)
}

// gameOver splatters random colored pixels over the last frame until a
// button is pressed.
func (g *Game) gameOver(ctx context.Context) error {
	for !g.hw.Controller.WasPressed() {
		x := g.prng.NextRange(core.Width)
		y := g.prng.NextRange(core.Height)
		c := core.Color(g.prng.NextRange(core.PaletteSize))
		g.screen.Set(x, y, c)
		if err := g.hw.Present(ctx, &g.screen); err != nil {
			return err
		}
		if err := g.hw.Sleep(ctx, uint64(g.cfg.SplatterMs)); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Score    int
	Lives    int
	Player   core.Dot
	Heading  core.Dot
	Enemies  []core.Dot
	Missiles int // Missiles in flight, all tanks
	Phase    Phase
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Lives:    g.lives,
		Player:   g.player.pos,
		Heading:  g.player.direction(),
		Missiles: g.player.inFlight(),
		Phase:    g.phase,
	}
	for i := range g.enemies[:g.enemyCount] {
		s.Enemies = append(s.Enemies, g.enemies[i].pos)
		s.Missiles += g.enemies[i].inFlight()
	}
	return s
}
