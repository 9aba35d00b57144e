package game

import (
	"github.com/samdwyer/ghostblade/internal/patrol"
	"github.com/samdwyer/ghostblade/internal/world"
)

// Snapshot is a read-only copy of a session for renderers. Mutating it
// never affects the session.
type Snapshot struct {
	Level   string
	Turn    int
	Outcome Outcome
	Grid    *world.Grid
	Player  PlayerView
	Guards  []GuardView
}

// PlayerView is the renderable part of the player.
type PlayerView struct {
	Pos    world.Position
	Facing world.Direction
	Keys   []int
	Logs   int
	Alive  bool
}

// GuardView is the renderable part of a guard.
type GuardView struct {
	ID        int
	Pos       world.Position
	Pattern   patrol.Kind
	Detection patrol.Detection
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	p := s.reg.Player
	snap := Snapshot{
		Level:   s.Level,
		Turn:    s.turn,
		Outcome: s.outcome,
		Grid:    s.grid.Clone(),
		Player: PlayerView{
			Pos:    p.Pos,
			Facing: p.Facing,
			Keys:   p.KeyIDs(),
			Logs:   p.Logs,
			Alive:  p.Alive,
		},
	}
	for _, g := range s.reg.Guards() {
		snap.Guards = append(snap.Guards, GuardView{
			ID:        g.ID,
			Pos:       g.Pos,
			Pattern:   g.Pattern.Kind(),
			Detection: g.Detection,
		})
	}
	return snap
}

// GuardAt returns the guard shown at p, if any.
func (s Snapshot) GuardAt(p world.Position) (GuardView, bool) {
	for _, g := range s.Guards {
		if g.Pos == p {
			return g, true
		}
	}
	return GuardView{}, false
}
