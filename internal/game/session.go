package game

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/ghostblade/internal/entity"
	"github.com/samdwyer/ghostblade/internal/interact"
	"github.com/samdwyer/ghostblade/internal/level"
	"github.com/samdwyer/ghostblade/internal/patrol"
	"github.com/samdwyer/ghostblade/internal/telemetry"
	"github.com/samdwyer/ghostblade/internal/world"
)

// Session is one attempt at one level. It owns its grid and entities and
// is discarded once its outcome is terminal. A Session is not safe for
// concurrent use.
type Session struct {
	ID    uuid.UUID
	Level string

	grid    *world.Grid
	reg     *entity.Registry
	engine  *interact.Engine
	turn    int
	outcome Outcome
}

// TurnResult is what one call to Step produced.
type TurnResult struct {
	Turn     int
	Command  Command
	Outcome  Outcome
	Action   interact.Result
	Snapshot Snapshot
}

// NewSession builds a fresh session from lvl. Random guards draw from seed,
// so two sessions with the same level, seed and commands play out identically.
func NewSession(ctx context.Context, lvl *level.Level, seed int64) (*Session, error) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "session.new")
	defer span.End()

	grid := lvl.Grid.Clone()
	player := entity.NewPlayer(lvl.PlayerStart, lvl.StartLogs)
	reg := entity.NewRegistry(player)

	for _, spec := range lvl.Guards {
		g := entity.NewGuard(spec.ID, spec.Start, spec.NewPattern(seed), spec.Detection)
		if err := reg.Add(g); err != nil {
			return nil, fmt.Errorf("failed to place guards for %s: %w", lvl.Name, err)
		}
	}

	s := &Session{
		ID:     uuid.New(),
		Level:  lvl.Name,
		grid:   grid,
		reg:    reg,
		engine: interact.NewEngine(grid, player),
	}

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.String("level.name", lvl.Name),
		attribute.Int("level.guards", reg.Count()),
		attribute.Int64("session.seed", seed),
	)

	return s, nil
}

// Outcome returns the current session state.
func (s *Session) Outcome() Outcome { return s.outcome }

// Turn returns the number of turns played.
func (s *Session) Turn() int { return s.turn }

// Step advances the session by one turn. The player acts first, then every
// guard in ID order, then capture is checked before the goal. Once the
// outcome is terminal, Step changes nothing.
func (s *Session) Step(ctx context.Context, cmd Command) TurnResult {
	if s.outcome.Terminal() {
		return s.result(cmd, interact.Rejected(interact.ReasonInvalid))
	}

	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "session.turn")
	defer span.End()

	if cmd == QuitCommand {
		s.outcome = Quit
		span.SetAttributes(attribute.String("turn.outcome", s.outcome.String()))
		return s.result(cmd, interact.Result{})
	}

	s.turn++
	action := s.apply(cmd)
	s.advanceGuards()

	player := s.reg.Player
	switch {
	case s.captured():
		player.Alive = false
		s.outcome = Lost
	case s.onGoal():
		s.outcome = Won
	}

	span.SetAttributes(
		attribute.Int("turn.number", s.turn),
		attribute.String("turn.command", cmd.String()),
		attribute.Bool("turn.applied", action.Applied),
		attribute.String("turn.effect", action.Effect.String()),
		attribute.String("turn.outcome", s.outcome.String()),
	)

	return s.result(cmd, action)
}

func (s *Session) apply(cmd Command) interact.Result {
	switch cmd {
	case MoveUp:
		return s.engine.Move(world.North)
	case MoveDown:
		return s.engine.Move(world.South)
	case MoveLeft:
		return s.engine.Move(world.West)
	case MoveRight:
		return s.engine.Move(world.East)
	case Interact:
		return s.engine.Interact()
	case UseAbility:
		return s.engine.Grapple()
	default:
		return interact.Rejected(interact.ReasonInvalid)
	}
}

func (s *Session) advanceGuards() {
	player := s.reg.Player.Pos
	for _, g := range s.reg.Guards() {
		id := g.ID
		env := patrol.Env{
			Grid:   s.grid,
			Player: player,
			Occupied: func(p world.Position) bool {
				other, ok := s.reg.GuardAt(p)
				return ok && other.ID != id
			},
		}
		to := patrol.Advance(g.Pattern, g.Detection, g.Pos, env)
		// Advance never proposes an occupied cell.
		if err := s.reg.Move(id, to); err != nil {
			panic(fmt.Sprintf("guard advance broke occupancy: %v", err))
		}
	}
}

func (s *Session) captured() bool {
	player := s.reg.Player.Pos
	for _, g := range s.reg.Guards() {
		if g.Detection.Captures(g.Pos, player, s.grid) {
			return true
		}
	}
	return false
}

func (s *Session) onGoal() bool {
	t, err := s.grid.TileAt(s.reg.Player.Pos)
	return err == nil && t.Kind == world.Goal
}

func (s *Session) result(cmd Command, action interact.Result) TurnResult {
	return TurnResult{
		Turn:     s.turn,
		Command:  cmd,
		Outcome:  s.outcome,
		Action:   action,
		Snapshot: s.Snapshot(),
	}
}
