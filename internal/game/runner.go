package game

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/ghostblade/internal/level"
	"github.com/samdwyer/ghostblade/internal/telemetry"
)

// View is everything a frontend needs to draw one frame.
type View struct {
	Snapshot   Snapshot
	Last       *TurnResult // Nil before the first turn of a session
	LevelIndex int         // 0-based
	LevelCount int
	Attempt    int // 1-based attempt at this level
	Cleared    bool
}

// Frontend draws views and supplies commands. Implementations own the terminal.
type Frontend interface {
	Render(v View)
	// NextCommand blocks until the player issues a command. io.EOF or a
	// cancelled context ends the run as a quit.
	NextCommand(ctx context.Context) (Command, error)
	// Acknowledge shows a terminal outcome and reports whether the player chose to quit.
	Acknowledge(ctx context.Context, v View) (quit bool, err error)
}

// Summary describes a finished run.
type Summary struct {
	LevelsCleared int
	Turns         int
	Captures      int
	Quit          bool
	Cleared       bool
}

// Runner plays a level pack in order: a won level advances, a lost level
// restarts from scratch, and quitting ends the run.
type Runner struct {
	levels []*level.Level
	front  Frontend
	log    logrus.FieldLogger
	seed   int64
}

// NewRunner creates a runner over levels.
func NewRunner(levels []*level.Level, front Frontend, log logrus.FieldLogger, seed int64) *Runner {
	return &Runner{
		levels: levels,
		front:  front,
		log:    log,
		seed:   seed,
	}
}

// Run plays from the level at index start until the pack is cleared or the player quits.
func (r *Runner) Run(ctx context.Context, start int) (Summary, error) {
	var sum Summary
	if start < 0 || start >= len(r.levels) {
		return sum, fmt.Errorf("start level %d out of range 1-%d", start+1, len(r.levels))
	}

	for idx := start; idx < len(r.levels); idx++ {
		outcome, err := r.playLevel(ctx, idx, &sum)
		if err != nil {
			return sum, err
		}
		if outcome == Quit {
			sum.Quit = true
			return sum, nil
		}
		sum.LevelsCleared++
	}

	sum.Cleared = true
	r.log.WithFields(logrus.Fields{
		"levels":   sum.LevelsCleared,
		"turns":    sum.Turns,
		"captures": sum.Captures,
	}).Info("all levels cleared")
	return sum, nil
}

// playLevel repeats attempts at one level until it is won or abandoned.
func (r *Runner) playLevel(ctx context.Context, idx int, sum *Summary) (Outcome, error) {
	lvl := r.levels[idx]

	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "run.level")
	defer span.End()

	for attempt := 1; ; attempt++ {
		s, err := NewSession(ctx, lvl, r.seed+int64(idx))
		if err != nil {
			return Quit, err
		}

		log := r.log.WithFields(logrus.Fields{
			"level":   lvl.Name,
			"session": s.ID.String(),
			"attempt": attempt,
		})
		log.Info("level started")

		view := View{
			Snapshot:   s.Snapshot(),
			LevelIndex: idx,
			LevelCount: len(r.levels),
			Attempt:    attempt,
		}

		outcome, err := r.playSession(ctx, s, &view, log)
		sum.Turns += s.Turn()
		span.SetAttributes(
			attribute.String("level.name", lvl.Name),
			attribute.Int("level.attempts", attempt),
			attribute.String("level.outcome", outcome.String()),
		)
		if err != nil || outcome == Quit {
			return Quit, err
		}

		log.WithField("turns", s.Turn()).Infof("level %s", outcome)

		view.Cleared = outcome == Won && idx == len(r.levels)-1
		quit, err := r.front.Acknowledge(ctx, view)
		if err != nil && !endOfInput(err) {
			return Quit, err
		}
		if quit || err != nil {
			return Quit, nil
		}

		if outcome == Won {
			return Won, nil
		}
		sum.Captures++
	}
}

func (r *Runner) playSession(ctx context.Context, s *Session, view *View, log logrus.FieldLogger) (Outcome, error) {
	for {
		r.front.Render(*view)

		cmd, err := r.front.NextCommand(ctx)
		if endOfInput(err) {
			cmd = QuitCommand
		} else if err != nil {
			return Quit, err
		}

		res := s.Step(ctx, cmd)
		view.Snapshot = res.Snapshot
		view.Last = &res

		log.WithFields(logrus.Fields{
			"turn":    res.Turn,
			"command": cmd.String(),
			"applied": res.Action.Applied,
			"effect":  res.Action.Effect.String(),
			"reason":  res.Action.Reason.String(),
			"outcome": res.Outcome.String(),
		}).Debug("turn")

		if res.Outcome.Terminal() {
			return res.Outcome, nil
		}
	}
}

// endOfInput reports whether err means the player is gone: input ran out
// or the run was interrupted.
func endOfInput(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}
