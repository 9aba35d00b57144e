// Package level decodes hand-authored level files into grids and guard
// definitions, and loads ordered level packs.
package level

import (
	"github.com/samdwyer/ghostblade/internal/patrol"
	"github.com/samdwyer/ghostblade/internal/world"
)

// Level is a decoded, validated level. It is never mutated; each session
// works on a clone of Grid and builds fresh guard patterns.
type Level struct {
	Name        string
	Grid        *world.Grid
	PlayerStart world.Position
	StartLogs   int
	Guards      []GuardSpec
}

// GuardSpec describes one guard as authored.
type GuardSpec struct {
	ID        int
	Start     world.Position
	Pattern   PatternSpec
	Detection patrol.Detection
}

// PatternSpec describes a patrol pattern before it has any runtime state.
type PatternSpec struct {
	Kind      patrol.Kind
	Waypoints []world.Position
	Seed      int64 // Random only; zero means derive from the session seed
	Base      *PatternSpec
}

// NewPattern builds the guard's pattern. Random patterns without an
// authored seed use sessionSeed offset by the guard ID.
func (g GuardSpec) NewPattern(sessionSeed int64) patrol.Pattern {
	return g.Pattern.build(sessionSeed + int64(g.ID))
}

func (s PatternSpec) build(fallbackSeed int64) patrol.Pattern {
	switch s.Kind {
	case patrol.KindLinear:
		return patrol.NewLinear(s.Waypoints)
	case patrol.KindLoop:
		return patrol.NewLoop(s.Waypoints)
	case patrol.KindChase:
		var base patrol.Pattern
		if s.Base != nil {
			base = s.Base.build(fallbackSeed)
		}
		return patrol.NewChase(base)
	default:
		seed := s.Seed
		if seed == 0 {
			seed = fallbackSeed
		}
		return patrol.NewRandom(seed)
	}
}
