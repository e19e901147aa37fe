// Package session runs a game Controller against a wall clock. It is the
// Controller's only owner: input and restarts arrive over channels and every
// tick is published as a bubbletea message.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/Mshel/loong/internal/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// FrameMsg carries the state after a tick, restart or session start.
type FrameMsg struct {
	State  game.ClassifiedSnapshot
	Tick   int
	Length int
	Ate    bool
}

// GameOverMsg reports the error that ended the round.
type GameOverMsg struct {
	Err    error
	Tick   int
	Length int
}

type Session struct {
	controller *game.Controller
	strategy   game.Strategy
	tickEvery  time.Duration
	logger     *log.Logger

	directionChannel chan game.Direction
	restartChannel   chan struct{}
	updateChannel    chan tea.Msg
}

type Option func(*Session)

// WithAutopilot lets s pick the heading before every tick.
func WithAutopilot(s game.Strategy) Option {
	return func(sess *Session) {
		sess.strategy = s
	}
}

func WithTickDuration(d time.Duration) Option {
	return func(sess *Session) {
		sess.tickEvery = d
	}
}

func WithLogger(l *log.Logger) Option {
	return func(sess *Session) {
		sess.logger = l
	}
}

func New(controller *game.Controller, opts ...Option) *Session {
	s := &Session{
		controller:       controller,
		tickEvery:        game.GameTickDuration,
		logger:           log.Default().WithPrefix("session"),
		directionChannel: make(chan game.Direction, 10),
		restartChannel:   make(chan struct{}, 1),
		updateChannel:    make(chan tea.Msg, 16),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Updates delivers FrameMsg and GameOverMsg values in tick order.
func (s *Session) Updates() <-chan tea.Msg {
	return s.updateChannel
}

// Steer queues a heading change. Input beyond the buffer is dropped, the same
// way a key held down is.
func (s *Session) Steer(d game.Direction) {
	select {
	case s.directionChannel <- d:
	default:
	}
}

// Restart asks the loop to start a new round.
func (s *Session) Restart() {
	select {
	case s.restartChannel <- struct{}{}:
	default:
	}
}

// Run drives the controller until ctx is done. After a game over the loop
// keeps serving restarts. Run closes the Updates channel on return, so it must
// be called at most once.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.updateChannel)

	ticker := time.NewTicker(s.tickEvery)
	defer ticker.Stop()

	tick := 0
	over := false
	s.publish(ctx, s.frame(tick, false))

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-s.restartChannel:
			if err := s.controller.Restart(); err != nil {
				return fmt.Errorf("restart: %w", err)
			}
			tick, over = 0, false
			ticker.Reset(s.tickEvery)
			s.publish(ctx, s.frame(tick, false))

		case dir := <-s.directionChannel:
			if over || s.strategy != nil {
				continue
			}
			if err := s.controller.SetDirection(dir); err != nil {
				over = true
				s.gameOver(ctx, err, tick)
			}

		case <-ticker.C:
			if over {
				continue
			}
			if err := s.steerAutopilot(); err != nil {
				over = true
				s.gameOver(ctx, err, tick)
				continue
			}
			ate, err := s.controller.Tick()
			if err != nil {
				over = true
				s.gameOver(ctx, err, tick)
				continue
			}
			tick++
			s.publish(ctx, s.frame(tick, ate))
		}
	}
}

func (s *Session) steerAutopilot() error {
	if s.strategy == nil {
		return nil
	}
	dir, err := s.strategy.NextDirection(s.controller.Snapshot(), s.controller.Config())
	if err != nil {
		s.logger.Warn("autopilot failed, keeping heading", "error", err)
		return nil
	}
	return s.controller.SetDirection(dir)
}

func (s *Session) frame(tick int, ate bool) FrameMsg {
	state := s.controller.ClassifiedSnapshotFlipped()
	return FrameMsg{
		State:  state,
		Tick:   tick,
		Length: len(state.Parts),
		Ate:    ate,
	}
}

func (s *Session) gameOver(ctx context.Context, err error, tick int) {
	length := len(s.controller.Snapshot().Body)
	s.logger.Info("game over", "error", err, "tick", tick, "length", length)
	s.publish(ctx, GameOverMsg{Err: err, Tick: tick, Length: length})
}

func (s *Session) publish(ctx context.Context, msg tea.Msg) {
	select {
	case s.updateChannel <- msg:
	case <-ctx.Done():
	}
}
