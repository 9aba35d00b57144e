package ui

import (
	"github.com/samdwyer/ghostblade/internal/game"
	"github.com/samdwyer/ghostblade/internal/patrol"
	"github.com/samdwyer/ghostblade/internal/world"
)

const playerGlyph = '@'

// tileGlyph returns the display character for a tile. Spawn markers draw
// as floor once play starts.
func tileGlyph(t world.Tile) rune {
	switch t.Kind {
	case world.Wall:
		return '#'
	case world.Empty, world.PlayerSpawn, world.GuardSpawn:
		return '.'
	case world.Goal:
		return 'X'
	case world.LockedDoor:
		if t.ID >= 1 && t.ID <= 26 {
			return 'A' + rune(t.ID-1)
		}
		return '+'
	case world.Key:
		if t.ID >= 1 && t.ID <= 26 {
			return 'a' + rune(t.ID-1)
		}
		return 'k'
	case world.HookPoint:
		if t.ID >= 1 && t.ID <= 9 {
			return '0' + rune(t.ID)
		}
		return 'o'
	case world.BridgeGap:
		return '~'
	case world.BridgeBuilt:
		return '='
	case world.Log:
		return 'L'
	default:
		return '?'
	}
}

// guardGlyph distinguishes guards by how they move.
func guardGlyph(g game.GuardView) rune {
	switch g.Pattern {
	case patrol.KindChase:
		return 'C'
	case patrol.KindRandom:
		return 'R'
	default:
		return 'G'
	}
}

// keyLetter names a key the way the map shows it.
func keyLetter(id int) string {
	if id >= 1 && id <= 26 {
		return string('a' + rune(id-1))
	}
	return "?"
}

// cellGlyph returns what is drawn at p: the player, a guard, or the tile.
func cellGlyph(snap game.Snapshot, p world.Position) rune {
	if snap.Player.Pos == p {
		return playerGlyph
	}
	if g, ok := snap.GuardAt(p); ok {
		return guardGlyph(g)
	}
	t, err := snap.Grid.TileAt(p)
	if err != nil {
		return ' '
	}
	return tileGlyph(t)
}
