package entity

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samdwyer/ghostblade/internal/world"
)

var (
	// ErrOccupied is returned when a guard would share a cell with another guard.
	ErrOccupied = errors.New("position occupied by a guard")
	// ErrDuplicateGuard is returned when a guard ID is already registered.
	ErrDuplicateGuard = errors.New("duplicate guard id")
	// ErrUnknownGuard is returned for operations on an unregistered guard ID.
	ErrUnknownGuard = errors.New("unknown guard id")
)

// Registry tracks the player and the guards of one level session.
// It keeps an index of guard positions so occupancy checks do not scan.
type Registry struct {
	Player *Player

	guards map[int]*Guard
	byPos  map[world.Position]*Guard
	order  []int
}

// NewRegistry creates a registry holding player and no guards.
func NewRegistry(player *Player) *Registry {
	return &Registry{
		Player: player,
		guards: make(map[int]*Guard),
		byPos:  make(map[world.Position]*Guard),
	}
}

// Add registers g.
func (r *Registry) Add(g *Guard) error {
	if _, ok := r.guards[g.ID]; ok {
		return fmt.Errorf("add guard %d: %w", g.ID, ErrDuplicateGuard)
	}
	if other, ok := r.byPos[g.Pos]; ok {
		return fmt.Errorf("add guard %d at (%d,%d) held by guard %d: %w",
			g.ID, g.Pos.Row, g.Pos.Col, other.ID, ErrOccupied)
	}

	r.guards[g.ID] = g
	r.byPos[g.Pos] = g

	i := sort.SearchInts(r.order, g.ID)
	r.order = append(r.order, 0)
	copy(r.order[i+1:], r.order[i:])
	r.order[i] = g.ID
	return nil
}

// Remove unregisters guard id.
func (r *Registry) Remove(id int) error {
	g, ok := r.guards[id]
	if !ok {
		return fmt.Errorf("remove guard %d: %w", id, ErrUnknownGuard)
	}
	delete(r.guards, id)
	delete(r.byPos, g.Pos)

	i := sort.SearchInts(r.order, id)
	r.order = append(r.order[:i], r.order[i+1:]...)
	return nil
}

// Move relocates guard id to to. Moving onto another guard fails.
func (r *Registry) Move(id int, to world.Position) error {
	g, ok := r.guards[id]
	if !ok {
		return fmt.Errorf("move guard %d: %w", id, ErrUnknownGuard)
	}
	if g.Pos == to {
		return nil
	}
	if other, ok := r.byPos[to]; ok {
		return fmt.Errorf("move guard %d to (%d,%d) held by guard %d: %w",
			id, to.Row, to.Col, other.ID, ErrOccupied)
	}

	delete(r.byPos, g.Pos)
	g.Pos = to
	r.byPos[to] = g
	return nil
}

// GuardAt returns the guard standing on p, if any.
func (r *Registry) GuardAt(p world.Position) (*Guard, bool) {
	g, ok := r.byPos[p]
	return g, ok
}

// Guard returns guard id, if registered.
func (r *Registry) Guard(id int) (*Guard, bool) {
	g, ok := r.guards[id]
	return g, ok
}

// Guards returns the guards in ascending ID order.
func (r *Registry) Guards() []*Guard {
	out := make([]*Guard, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.guards[id])
	}
	return out
}

// Count returns the number of registered guards.
func (r *Registry) Count() int {
	return len(r.order)
}

// MovePlayer places the player at p.
func (r *Registry) MovePlayer(p world.Position) {
	r.Player.Pos = p
}
