package entity

import (
	"github.com/samdwyer/ghostblade/internal/patrol"
	"github.com/samdwyer/ghostblade/internal/world"
)

// Guard is a patrolling adversary.
type Guard struct {
	ID        int
	Pos       world.Position
	Pattern   patrol.Pattern
	Detection patrol.Detection
}

// NewGuard creates a guard at pos.
func NewGuard(id int, pos world.Position, pattern patrol.Pattern, det patrol.Detection) *Guard {
	return &Guard{
		ID:        id,
		Pos:       pos,
		Pattern:   pattern,
		Detection: det,
	}
}

