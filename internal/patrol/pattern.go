// Package patrol decides where guards move each turn and whether they see the player.
package patrol

import (
	"fmt"
	"math/rand"

	"github.com/samdwyer/ghostblade/internal/world"
)

// Kind names a movement pattern.
type Kind int

const (
	KindLinear Kind = iota
	KindLoop
	KindRandom
	KindChase
)

// String returns the pattern name as written in level files.
func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindLoop:
		return "loop"
	case KindRandom:
		return "random"
	case KindChase:
		return "chase"
	default:
		return "unknown"
	}
}

// ParseKind converts a level-file pattern name to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindLinear, KindLoop, KindRandom, KindChase} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown patrol pattern %q", s)
}

// Pattern is a guard movement strategy. The set of patterns is closed;
// the concrete types are Linear, Loop, Random and Chase.
type Pattern interface {
	Kind() Kind
	// next proposes the guard's next position. Patterns may keep state
	// between calls; a proposal the guard cannot take is simply not taken.
	next(from world.Position, env Env, sighted bool) world.Position
}

// Linear walks its waypoints in order and reverses at either end.
type Linear struct {
	Waypoints []world.Position
	target    int
	forward   bool
}

// NewLinear returns a back-and-forth pattern over waypoints.
func NewLinear(waypoints []world.Position) *Linear {
	return &Linear{Waypoints: waypoints, forward: true}
}

func (l *Linear) Kind() Kind { return KindLinear }

func (l *Linear) next(from world.Position, env Env, _ bool) world.Position {
	if len(l.Waypoints) == 0 {
		return from
	}
	if from == l.Waypoints[l.target] {
		l.advance()
	}
	return stepToward(from, l.Waypoints[l.target], env)
}

func (l *Linear) advance() {
	if len(l.Waypoints) < 2 {
		return
	}
	if l.forward && l.target == len(l.Waypoints)-1 {
		l.forward = false
	} else if !l.forward && l.target == 0 {
		l.forward = true
	}
	if l.forward {
		l.target++
	} else {
		l.target--
	}
}

// Loop walks its waypoints in order and wraps from the last to the first.
type Loop struct {
	Waypoints []world.Position
	target    int
}

// NewLoop returns a cyclic pattern over waypoints.
func NewLoop(waypoints []world.Position) *Loop {
	return &Loop{Waypoints: waypoints}
}

func (l *Loop) Kind() Kind { return KindLoop }

func (l *Loop) next(from world.Position, env Env, _ bool) world.Position {
	if len(l.Waypoints) == 0 {
		return from
	}
	if from == l.Waypoints[l.target] {
		l.target = (l.target + 1) % len(l.Waypoints)
	}
	return stepToward(from, l.Waypoints[l.target], env)
}

// Random steps to a uniformly chosen open neighbour.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a random-walk pattern. The same seed yields the same walk.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Kind() Kind { return KindRandom }

func (r *Random) next(from world.Position, env Env, _ bool) world.Position {
	var open []world.Position
	for _, p := range from.Neighbors() {
		if env.open(p) {
			open = append(open, p)
		}
	}
	if len(open) == 0 {
		return from
	}
	return open[r.rng.Intn(len(open))]
}

// Chase pursues the player while it is detected. On any turn the player
// is not detected it defers to Base, so losing sight of the player never
// strands the guard.
type Chase struct {
	Base Pattern
}

// NewChase wraps base with pursuit behaviour.
func NewChase(base Pattern) *Chase {
	return &Chase{Base: base}
}

func (c *Chase) Kind() Kind { return KindChase }

func (c *Chase) next(from world.Position, env Env, sighted bool) world.Position {
	if sighted {
		return stepToward(from, env.Player, env)
	}
	if c.Base == nil {
		return from
	}
	return c.Base.next(from, env, false)
}

// stepToward returns the open neighbour of from that reduces the Manhattan
// distance to target, preferring the axis with the larger gap. It returns
// from when no such neighbour exists.
func stepToward(from, target world.Position, env Env) world.Position {
	dist := from.Manhattan(target)
	if dist == 0 {
		return from
	}

	dirs := world.AllDirections()
	if abs(target.Col-from.Col) > abs(target.Row-from.Row) {
		dirs = []world.Direction{world.East, world.West, world.North, world.South}
	}

	for _, d := range dirs {
		p := from.Step(d)
		if p.Manhattan(target) < dist && env.open(p) {
			return p
		}
	}
	return from
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
