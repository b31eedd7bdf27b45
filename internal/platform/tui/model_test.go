package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-swiftris/internal/core"
	"github.com/vovakirdan/tui-swiftris/internal/storage"
)

// stubGame ends after a fixed number of steps with a fixed score.
type stubGame struct {
	resets  int
	steps   int
	endAt   int
	score   int
	seen    []core.Action
	resized [2]int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.seen = append(g.seen, in.Actions()...)
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "stub")
}

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, Level: 2, Lines: 3, GameOver: g.steps >= g.endAt}
}

func (g *stubGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func testRuntime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = 1
	cfg.Difficulty = "hard"
	return cfg
}

func TestModelForwardsInput(t *testing.T) {
	game := &stubGame{endAt: 100}
	m := NewModel(game, nil, testRuntime(), nil)
	m.Init()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = tick(t, next.(Model))

	assert.Equal(t, []core.Action{core.ActionLeft, core.ActionDrop}, game.seen)
	assert.Empty(t, m.inputFrame.Actions())
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{endAt: 100}, nil, testRuntime(), nil)

	next, cmd := m.Update(runeKey("q"))

	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View())
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{endAt: 1, score: 420}
	m := NewModel(game, store, testRuntime(), nil)
	m.Init()

	m = tick(t, m)
	m = tick(t, m)

	scores, err := store.TopScores("stub", "", 10)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 420, scores[0].Score)
	assert.Equal(t, "hard", scores[0].Difficulty)
	assert.Equal(t, 2, scores[0].Level)
	assert.Equal(t, 3, scores[0].Lines)
	assert.True(t, m.scoreSaved)
}

func TestModelSkipsZeroScore(t *testing.T) {
	store := openStore(t)
	m := NewModel(&stubGame{endAt: 1}, store, testRuntime(), nil)
	m.Init()
	tick(t, m)

	scores, err := store.TopScores("stub", "", 10)
	require.NoError(t, err)
	assert.Empty(t, scores)
}

func TestModelRestartAfterGameOver(t *testing.T) {
	game := &stubGame{endAt: 1, score: 10}
	m := NewModel(game, nil, testRuntime(), nil)
	m.Init()
	m = tick(t, m)
	require.True(t, m.gameState.GameOver)

	next, _ := m.Update(runeKey("r"))
	m = tick(t, next.(Model))

	assert.Equal(t, 2, game.resets)
	assert.False(t, m.scoreSaved)
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := &stubGame{endAt: 100}
	m := NewModel(game, nil, testRuntime(), nil)
	m.Init()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	assert.Equal(t, 1, game.resets)
	assert.Equal(t, [2]int{120, 40}, game.resized)
	assert.Equal(t, 120, m.screen.Width())
	assert.Contains(t, m.View(), "stub")
}
