package patrol

import "github.com/samdwyer/ghostblade/internal/world"

// Env is what a guard knows about the level when it moves.
type Env struct {
	Grid   *world.Grid
	Player world.Position
	// Occupied reports cells held by other guards. Nil means none.
	Occupied func(world.Position) bool
}

func (e Env) open(p world.Position) bool {
	if !e.Grid.Passable(p, nil) {
		return false
	}
	return e.Occupied == nil || !e.Occupied(p)
}

// Advance moves a guard one turn and returns its new position. A guard
// whose proposed cell is not an open orthogonal neighbour waits in place.
// Guards never hold keys, so locked doors stop them.
func Advance(p Pattern, d Detection, from world.Position, env Env) world.Position {
	sighted := d.Sees(from, env.Player, env.Grid)
	to := p.next(from, env, sighted)
	if to == from || !from.Adjacent(to) || !env.open(to) {
		return from
	}
	return to
}
