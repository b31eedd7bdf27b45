// Package swiftris runs the falling-block rules engine as a platform game.
// It owns pacing, input, the line-clear and game-over phases and rendering;
// the engine package owns the rules.
package swiftris

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-swiftris/internal/config"
	"github.com/vovakirdan/tui-swiftris/internal/core"
	"github.com/vovakirdan/tui-swiftris/internal/games/swiftris/engine"
	"github.com/vovakirdan/tui-swiftris/internal/gravity"
)

// ID is the identifier scores are stored under.
const ID = "swiftris"

type phase int

const (
	phasePlaying  phase = iota
	phaseClearing       // Completed rows flash before the next spawn
	phaseEnding         // The board empties after a game over
	phaseOver
)

// Game drives an engine.Engine one tick at a time.
type Game struct {
	cfg    config.SwiftrisConfig
	policy gravity.Policy
	log    *log.Logger

	eng    *engine.Engine
	events *engine.Queue
	rng    *rand.Rand
	tick   uint64

	tickRate  int
	fallTicks int // Ticks between two gravity steps at the current level
	fallTimer int

	phase      phase
	phaseTicks int          // Remaining ticks of the clear or ending phase
	frozen     [][]cellView // Board as it was when the phase started
	flashing   map[int]bool // Rows removed by the last clear

	score  int
	level  int
	lines  int
	pieces int
	best   int

	paused   bool
	tooSmall bool
	screenW  int
	screenH  int
}

// New creates a game. A nil policy uses the fixed or stepped curve of cfg;
// a Lua script is never loaded here, the caller owns such a policy and
// closes it. A nil logger discards output.
func New(cfg config.SwiftrisConfig, policy gravity.Policy, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if policy == nil {
		policy = gravity.Static(cfg.Gravity)
	}
	return &Game{cfg: cfg, policy: policy, log: logger}
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Swiftris" }

// SetBest seeds the high score shown in the HUD.
func (g *Game) SetBest(score int) {
	if score > g.best {
		g.best = score
	}
}

// Reset starts a new session with an empty board.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}

	eng, err := engine.New(g.cfg.ToEngine(), g.rng)
	if err != nil {
		g.log.Error("invalid board config, using defaults", "err", err)
		eng, _ = engine.New(engine.DefaultConfig(), g.rng)
	}
	g.eng = eng
	g.events = engine.NewQueue()
	g.eng.SetListener(g.events)

	g.tick = 0
	g.fallTimer = 0
	g.phase = phasePlaying
	g.phaseTicks = 0
	g.frozen = nil
	g.flashing = nil
	g.lines = 0
	g.pieces = 0
	g.paused = false
	g.Resize(rc.ScreenW, rc.ScreenH)

	g.eng.RemoveAllBlocks()
	g.eng.BeginGame()
	g.process()
}

// Resize adapts to a new screen size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	bw, bh := g.layoutSize()
	g.tooSmall = w < bw || h < bh
}

// Engine exposes the rules engine, mainly for tests and tooling.
func (g *Game) Engine() *engine.Engine { return g.eng }

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, a := range in.Actions() {
		g.apply(a)
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	switch g.phase {
	case phasePlaying:
		g.fallTimer++
		if g.fallTimer >= g.fallTicks {
			g.fallTimer = 0
			g.eng.LetShapeFall()
			g.process()
		}
	case phaseClearing:
		g.phaseTicks--
		if g.phaseTicks <= 0 {
			g.phase = phasePlaying
			g.frozen, g.flashing = nil, nil
			g.settle()
			g.process()
		}
	case phaseEnding:
		g.phaseTicks--
		if g.phaseTicks <= 0 {
			g.phase = phaseOver
			g.frozen = nil
		}
	}

	return core.StepResult{State: g.State()}
}

// apply handles one input action.
func (g *Game) apply(a core.Action) {
	if a == core.ActionPause {
		if g.phase == phasePlaying || g.phase == phaseClearing {
			g.paused = !g.paused
		}
		return
	}
	if g.paused || g.phase != phasePlaying || g.eng.FallingShape() == nil {
		return
	}

	switch a {
	case core.ActionLeft:
		g.eng.MoveShapeLeft()
	case core.ActionRight:
		g.eng.MoveShapeRight()
	case core.ActionRotate:
		g.eng.RotateShape()
	case core.ActionDown:
		g.fallTimer = 0
		g.eng.LetShapeFall()
	case core.ActionDrop:
		g.eng.DropShape()
	default:
		return
	}
	g.process()
}

// process reacts to the events queued by the last engine calls. Reactions
// may call the engine again, which queues more events; the loop runs until
// the queue stays empty.
func (g *Game) process() {
	for g.events.Len() > 0 {
		for _, ev := range g.events.Drain() {
			g.handle(ev)
		}
	}
}

func (g *Game) handle(ev engine.Event) {
	switch ev.Kind {
	case engine.EventGameBegan:
		g.score, g.level = g.eng.Score(), g.eng.Level()
		g.updateGravity()
		g.spawn()

	case engine.EventShapeDropped:
		// The shape already sits on its landing row; one more gravity step
		// settles it right away.
		g.fallTimer = 0
		g.eng.LetShapeFall()

	case engine.EventShapeLanded:
		g.pieces++
		g.settle()

	case engine.EventLevelUp:
		g.log.Debug("level up", "level", ev.Level, "score", ev.Score)
		g.updateGravity()

	case engine.EventGameEnded:
		g.endGame()
	}
}

// spawn brings the next shape into play. A blocked spawn ends the game
// through the queued GameEnded event.
func (g *Game) spawn() {
	if g.phase != phasePlaying {
		return
	}
	g.fallTimer = 0
	g.eng.NewShape()
}

// settle clears completed rows after a landing. Removed rows flash for the
// configured number of ticks, then the check repeats because compaction can
// complete new rows. When nothing is left to clear the next shape spawns.
func (g *Game) settle() {
	before := g.captureBoard()
	removed, fallen := g.eng.RemoveCompletedLines()
	g.score, g.level = g.eng.Score(), g.eng.Level()
	if g.score > g.best {
		g.best = g.score
	}

	if len(removed) == 0 {
		g.spawn()
		return
	}

	g.lines += len(removed)
	g.log.Debug("lines cleared", "rows", len(removed), "columns moved", len(fallen), "score", g.score)

	if g.cfg.Animation.ClearTicks <= 0 {
		g.settle()
		return
	}

	g.frozen = before
	g.flashing = make(map[int]bool, len(removed))
	for _, row := range removed {
		g.flashing[row[0].Row] = true
	}
	g.phase = phaseClearing
	g.phaseTicks = g.cfg.Animation.ClearTicks
}

// endGame keeps the final score, which the engine has already reset, and
// empties the board.
func (g *Game) endGame() {
	g.log.Debug("game over", "score", g.score, "level", g.level, "lines", g.lines, "pieces", g.pieces)

	g.frozen = g.captureBoard()
	g.flashing = nil
	g.eng.RemoveAllBlocks()
	g.paused = false

	if g.cfg.Animation.GameOverTicks > 0 {
		g.phase = phaseEnding
		g.phaseTicks = g.cfg.Animation.GameOverTicks
		return
	}
	g.phase = phaseOver
	g.frozen = nil
}

// updateGravity converts the policy interval for the current level to ticks.
func (g *Game) updateGravity() {
	d := g.policy.Interval(g.eng.Level())
	g.fallTicks = gravity.Ticks(d, g.tickRate)
	g.log.Debug("gravity", "level", g.eng.Level(), "interval", d, "ticks", g.fallTicks)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		Lines:    g.lines,
		GameOver: g.phase == phaseEnding || g.phase == phaseOver,
		Paused:   g.paused || g.tooSmall,
	}
}
