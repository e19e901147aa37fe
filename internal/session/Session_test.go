package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mshel/loong/internal/game"
	tea "github.com/charmbracelet/bubbletea"
)

type fixedStrategy game.Direction

func (f fixedStrategy) NextDirection(game.Snapshot, game.Config) (game.Direction, error) {
	return game.Direction(f), nil
}

func startSession(t *testing.T, cfg game.Config, opts ...Option) (*Session, <-chan error) {
	t.Helper()
	controller, err := game.NewController(cfg, game.WithSeed(1))
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	opts = append([]Option{WithTickDuration(5 * time.Millisecond)}, opts...)
	s := New(controller, opts...)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("session did not stop")
		}
	})
	return s, done
}

func nextMsg(t *testing.T, s *Session) tea.Msg {
	t.Helper()
	select {
	case msg := <-s.Updates():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no update from session")
		return nil
	}
}

func waitGameOver(t *testing.T, s *Session) GameOverMsg {
	t.Helper()
	for i := 0; i < 100; i++ {
		if over, ok := nextMsg(t, s).(GameOverMsg); ok {
			return over
		}
	}
	t.Fatal("no game over within 100 updates")
	return GameOverMsg{}
}

func TestSession_PublishesInitialFrame(t *testing.T) {
	s, _ := startSession(t, game.Config{Width: 15, Height: 10, InitialLength: 3})

	frame, ok := nextMsg(t, s).(FrameMsg)
	if !ok {
		t.Fatal("first update is not a frame")
	}
	if frame.Tick != 0 || frame.Length != 3 {
		t.Fatalf("frame tick=%d length=%d want 0/3", frame.Tick, frame.Length)
	}
	if head := frame.State.Parts[0]; head.Kind != game.PartHead || head.Point != (game.Point{X: 7, Y: 5}) {
		t.Fatalf("head part=%+v", head)
	}
}

func TestSession_WallEndsRoundAndRestartRecovers(t *testing.T) {
	s, _ := startSession(t, game.Config{Width: 15, Height: 10, InitialLength: 3})

	over := waitGameOver(t, s)
	if !errors.Is(over.Err, game.ErrWallCollision) {
		t.Fatalf("err=%v want ErrWallCollision", over.Err)
	}
	if over.Tick != 7 {
		t.Fatalf("died on tick %d, want 7 moves to reach the right wall", over.Tick)
	}

	s.Restart()
	for i := 0; i < 100; i++ {
		if frame, ok := nextMsg(t, s).(FrameMsg); ok {
			if frame.Tick != 0 {
				t.Fatalf("first frame after restart has tick %d", frame.Tick)
			}
			return
		}
	}
	t.Fatal("no frame after restart")
}

func TestSession_SteerTurnsCreature(t *testing.T) {
	s, _ := startSession(t, game.Config{Width: 15, Height: 10, InitialLength: 3})
	nextMsg(t, s)

	s.Steer(game.Up)
	over := waitGameOver(t, s)
	if !errors.Is(over.Err, game.ErrWallCollision) {
		t.Fatalf("err=%v want ErrWallCollision", over.Err)
	}
	// Heading up from row 5 of 10 hits the wall far sooner than the 7
	// ticks it takes to the right.
	if over.Tick > 5 {
		t.Fatalf("died on tick %d, the turn was not applied", over.Tick)
	}
}

func TestSession_AutopilotOverridesInput(t *testing.T) {
	s, _ := startSession(t,
		game.Config{Width: 15, Height: 10, InitialLength: 3},
		WithAutopilot(fixedStrategy(game.Down)),
	)

	s.Steer(game.Up)
	over := waitGameOver(t, s)
	if !errors.Is(over.Err, game.ErrWallCollision) {
		t.Fatalf("err=%v want ErrWallCollision", over.Err)
	}
	if over.Tick != 5 {
		t.Fatalf("died on tick %d, want 5 moves down from row 5", over.Tick)
	}
}

func TestSession_StrictReversalIsGameOver(t *testing.T) {
	s, _ := startSession(t, game.Config{Width: 15, Height: 10, InitialLength: 3, FailOnReversal: true})
	nextMsg(t, s)

	s.Steer(game.Left)
	over := waitGameOver(t, s)
	if !errors.Is(over.Err, game.ErrSelfCollision) {
		t.Fatalf("err=%v want ErrSelfCollision", over.Err)
	}
}

func TestSession_RunStopsOnCancel(t *testing.T) {
	controller, err := game.NewController(game.Config{Width: 9, Height: 9, InitialLength: 2})
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	s := New(controller, WithTickDuration(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run ignored cancellation")
	}
}
