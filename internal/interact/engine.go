package interact

import (
	"github.com/samdwyer/ghostblade/internal/entity"
	"github.com/samdwyer/ghostblade/internal/world"
)

// Engine resolves player actions against one level's grid.
type Engine struct {
	grid   *world.Grid
	player *entity.Player
	hooks  map[int][]world.Position
}

// NewEngine creates an engine for grid and player. Hook pairs are indexed
// once here; hook tiles never change during a session.
func NewEngine(grid *world.Grid, player *entity.Player) *Engine {
	hooks := make(map[int][]world.Position)
	for _, p := range grid.Find(world.HookPoint) {
		t, _ := grid.TileAt(p)
		hooks[t.ID] = append(hooks[t.ID], p)
	}
	return &Engine{grid: grid, player: player, hooks: hooks}
}

// Move tries to step the player one cell in direction d. Entering a cell
// applies its effect in priority order: door unlock, key pickup, log pickup.
// The player faces d even when the move is rejected.
func (e *Engine) Move(d world.Direction) Result {
	p := e.player
	p.Facing = d
	target := p.Pos.Step(d)

	tile, err := e.grid.TileAt(target)
	if err != nil {
		return Rejected(ReasonOutOfBounds)
	}

	var res Result
	switch tile.Kind {
	case world.Wall, world.BridgeGap:
		return Rejected(ReasonBlocked)
	case world.LockedDoor:
		if !p.Has(tile.ID) {
			return Rejected(ReasonLocked)
		}
		res = applied(EffectDoor, tile.ID)
	case world.Key:
		p.AddKey(tile.ID)
		res = applied(EffectKey, tile.ID)
	case world.Log:
		p.Logs++
		res = applied(EffectLog, 0)
	default:
		res = applied(EffectMoved, 0)
	}

	if res.Effect != EffectMoved {
		if err := e.grid.SetTile(target, world.EmptyTile); err != nil {
			return Rejected(ReasonOutOfBounds)
		}
	}
	p.Pos = target
	return res
}

// Interact builds a bridge over a gap next to the player. The faced cell
// is tried first, then the other neighbours in north, east, south, west order.
func (e *Engine) Interact() Result {
	p := e.player
	gap, ok := e.findNear(p.Pos, false, world.BridgeGap)
	if !ok {
		return Rejected(ReasonNoTarget)
	}

	tile, _ := e.grid.TileAt(gap)
	if p.Logs < tile.Cost {
		return Rejected(ReasonInsufficientLogs)
	}

	if err := e.grid.SetTile(gap, world.Tile{Kind: world.BridgeBuilt}); err != nil {
		return Rejected(ReasonOutOfBounds)
	}
	p.Logs -= tile.Cost
	return applied(EffectBridge, 0)
}

// Grapple pulls the player to the partner of a hook under or next to them.
// The path between the two hooks must be free of walls.
func (e *Engine) Grapple() Result {
	p := e.player
	hook, ok := e.findNear(p.Pos, true, world.HookPoint)
	if !ok {
		return Rejected(ReasonNoTarget)
	}

	tile, _ := e.grid.TileAt(hook)
	dest, ok := e.Partner(tile.ID, hook)
	if !ok {
		return Rejected(ReasonUnpaired)
	}
	if dest == p.Pos {
		return Rejected(ReasonAtDestination)
	}
	if !e.grid.ClearLine(hook, dest) {
		return Rejected(ReasonPathBlocked)
	}

	p.Pos = dest
	return applied(EffectGrapple, tile.ID)
}

// Partner returns the other end of hook pair id.
func (e *Engine) Partner(id int, from world.Position) (world.Position, bool) {
	ends := e.hooks[id]
	if len(ends) != 2 {
		return world.Position{}, false
	}
	if ends[0] == from {
		return ends[1], true
	}
	if ends[1] == from {
		return ends[0], true
	}
	return world.Position{}, false
}

// findNear returns the first cell of kind around pos: pos itself when
// includeSelf is set, then the faced neighbour, then the rest.
func (e *Engine) findNear(pos world.Position, includeSelf bool, kind world.TileKind) (world.Position, bool) {
	candidates := make([]world.Position, 0, 6)
	if includeSelf {
		candidates = append(candidates, pos)
	}
	candidates = append(candidates, pos.Step(e.player.Facing))
	candidates = append(candidates, pos.Neighbors()...)

	for _, c := range candidates {
		t, err := e.grid.TileAt(c)
		if err == nil && t.Kind == kind {
			return c, true
		}
	}
	return world.Position{}, false
}
