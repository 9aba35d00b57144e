package patrol

import (
	"fmt"

	"github.com/samdwyer/ghostblade/internal/world"
)

// Mode selects how a guard perceives the player.
type Mode int

const (
	// Adjacency sees the player within Radius steps of Manhattan distance.
	Adjacency Mode = iota
	// LineOfSight sees the player on the same row or column within Radius
	// with no wall between them, and captures on sight.
	LineOfSight
)

// String returns the mode name as written in level files.
func (m Mode) String() string {
	switch m {
	case Adjacency:
		return "adjacency"
	case LineOfSight:
		return "sight"
	default:
		return "unknown"
	}
}

// ParseMode converts a level-file detection name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "adjacency":
		return Adjacency, nil
	case "sight", "line_of_sight":
		return LineOfSight, nil
	default:
		return 0, fmt.Errorf("unknown detection mode %q", s)
	}
}

// Detection describes a guard's senses.
type Detection struct {
	Mode   Mode
	Radius int
}

// Sees reports whether a guard at guard perceives the player at player.
func (d Detection) Sees(guard, player world.Position, grid *world.Grid) bool {
	dist := guard.Manhattan(player)
	if dist > d.Radius {
		return false
	}
	switch d.Mode {
	case Adjacency:
		return true
	case LineOfSight:
		return grid.ClearLine(guard, player)
	default:
		return false
	}
}

// Captures reports whether the guard catches the player this turn.
// Sharing a cell always captures; line-of-sight guards also capture on sight.
func (d Detection) Captures(guard, player world.Position, grid *world.Grid) bool {
	if guard == player {
		return true
	}
	return d.Mode == LineOfSight && d.Sees(guard, player, grid)
}
