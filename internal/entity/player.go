// Package entity holds the player, the guards and the registry that tracks them.
package entity

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/samdwyer/ghostblade/internal/world"
)

// Player is the agent controlled by the input source.
type Player struct {
	Pos    world.Position
	Facing world.Direction // Direction of the last move command
	Keys   mapset.Set[int] // Collected key IDs
	Logs   int             // Bridge-building resources
	Alive  bool
}

// NewPlayer creates a living player at pos facing east.
func NewPlayer(pos world.Position, logs int) *Player {
	return &Player{
		Pos:    pos,
		Facing: world.East,
		Keys:   mapset.New[int](),
		Logs:   logs,
		Alive:  true,
	}
}

// Has reports whether the player holds key id. Player satisfies world.KeySet.
func (p *Player) Has(id int) bool {
	return p.Keys.Has(id)
}

// AddKey stores key id and reports whether it was new.
func (p *Player) AddKey(id int) bool {
	if p.Keys.Has(id) {
		return false
	}
	p.Keys.Put(id)
	return true
}

// KeyIDs returns the held key IDs in ascending order.
func (p *Player) KeyIDs() []int {
	ids := make([]int, 0, p.Keys.Size())
	p.Keys.Each(func(id int) {
		ids = append(ids, id)
	})
	sort.Ints(ids)
	return ids
}
