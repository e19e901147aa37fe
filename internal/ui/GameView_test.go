package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/Mshel/loong/internal/game"
	"github.com/Mshel/loong/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestPartRunes(t *testing.T) {
	// Tail at the bottom, running up and turning right.
	body := []game.Point{{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	parts := game.ClassifySegments(body, game.Right, 5, true)

	want := []string{"▶", "╭", "│", "╵"}
	for i, part := range parts {
		if got := partRune(part); got != want[i] {
			t.Errorf("part %d (%v %v)=%q want=%q", i, part.Kind, part.Point, got, want[i])
		}
	}
}

func TestPartRunesHorizontal(t *testing.T) {
	body := []game.Point{{X: 3, Y: 1}, {X: 2, Y: 1}, {X: 1, Y: 1}}
	parts := game.ClassifySegments(body, game.Right, 3, true)

	got := partRune(parts[0]) + partRune(parts[1]) + partRune(parts[2])
	if got != "▶─╶" {
		t.Errorf("runes=%q want=%q", got, "▶─╶")
	}
}

func TestRenderBoard(t *testing.T) {
	cfg := game.Config{Width: 5, Height: 5, InitialLength: 1}
	body := []game.Point{{X: 2, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	food := []game.Point{{X: 4, Y: 4}}
	state := game.Classify(body, food, game.Right, cfg.Height, true)

	got := ansi.Strip(renderBoard(state, cfg, 10, 10))
	want := strings.Join([]string{
		"····●",
		"·····",
		"·╭▶··",
		"·│···",
		"·╵···",
	}, "\n")

	if got != want {
		t.Errorf("board=\n%s\nwant\n%s", got, want)
	}
}

func TestRenderBoardCropsAroundHead(t *testing.T) {
	cfg := game.Config{Width: 20, Height: 3, InitialLength: 1}
	state := game.Classify([]game.Point{{X: 18, Y: 1}}, nil, game.Right, cfg.Height, true)

	got := ansi.Strip(renderBoard(state, cfg, 5, 2))
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("rows=%d want 2\n%s", len(lines), got)
	}
	for _, line := range lines {
		if n := len([]rune(line)); n != 5 {
			t.Errorf("columns=%d want 5 in %q", n, line)
		}
	}
	if !strings.Contains(got, "▶") {
		t.Errorf("head is outside the viewport\n%s", got)
	}
}

func TestRenderBoardCostIgnoresGridArea(t *testing.T) {
	allocs := func(side uint16) float64 {
		cfg := game.Config{Width: side, Height: side, InitialLength: 5}
		c := side / 2
		body := []game.Point{{X: c, Y: c}, {X: c - 1, Y: c}, {X: c - 2, Y: c}, {X: c - 3, Y: c}, {X: c - 4, Y: c}}
		food := []game.Point{{X: c + 3, Y: c + 2}}
		state := game.Classify(body, food, game.Right, cfg.Height, true)

		return testing.AllocsPerRun(20, func() {
			renderBoard(state, cfg, 20, 10)
		})
	}

	small, large := allocs(40), allocs(2000)
	if large > small+5 {
		t.Errorf("allocs on 2000x2000=%v want about the same as 40x40=%v", large, small)
	}
}

func TestViewportSpan(t *testing.T) {
	cases := []struct {
		center, total, visible int
		start, end             int
	}{
		{10, 20, 5, 8, 13},
		{0, 20, 5, 0, 5},
		{19, 20, 5, 15, 20},
		{3, 4, 10, 0, 4},
		{2, 4, 0, 2, 3},
	}

	for _, c := range cases {
		start, end := viewportSpan(c.center, c.total, c.visible)
		if start != c.start || end != c.end {
			t.Errorf("viewportSpan(%d, %d, %d)=[%d,%d) want=[%d,%d)",
				c.center, c.total, c.visible, start, end, c.start, c.end)
		}
	}
}

func newTestGameModel(t *testing.T) (GameViewModel, *session.Session) {
	t.Helper()

	cfg := game.Config{Width: 15, Height: 10, InitialLength: 3}
	controller, err := game.NewController(cfg, game.WithSeed(1))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	sess := session.New(controller, session.WithTickDuration(time.Hour))
	return NewGameModel(sess, cfg, false, 80, 24), sess
}

func TestGameModelFramesAndGameOver(t *testing.T) {
	m, _ := newTestGameModel(t)

	if view := m.View(); !strings.Contains(view, "Waiting") {
		t.Errorf("view=%q want a waiting message before the first frame", view)
	}

	frame := session.FrameMsg{
		State:  game.Classify([]game.Point{{X: 7, Y: 5}, {X: 6, Y: 5}, {X: 5, Y: 5}}, nil, game.Right, 10, true),
		Tick:   3,
		Length: 3,
	}
	model, cmd := m.Update(frame)
	m = model.(GameViewModel)
	if cmd == nil {
		t.Error("model stopped listening after a frame")
	}
	view := ansi.Strip(m.View())
	for _, want := range []string{"Length: 3", "Tick: 3", "╶─▶"} {
		if !strings.Contains(view, want) {
			t.Errorf("view is missing %q\n%s", want, view)
		}
	}

	model, _ = m.Update(session.GameOverMsg{Err: game.ErrWallCollision, Tick: 9, Length: 3})
	m = model.(GameViewModel)
	view = ansi.Strip(m.View())
	if !strings.Contains(view, "G A M E   O V E R") || !strings.Contains(view, "Ticks survived: 9") {
		t.Errorf("view=\n%s\nwant the game over screen", view)
	}
}

func TestGameOverMenuButton(t *testing.T) {
	m, _ := newTestGameModel(t)
	model, _ := m.Update(session.GameOverMsg{Err: game.ErrSelfCollision})
	m = model.(GameViewModel)

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = model.(GameViewModel)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("menu button produced no command")
	}
	if _, ok := cmd().(BackToIntroMsg); !ok {
		t.Errorf("menu button did not return to the intro")
	}
}
