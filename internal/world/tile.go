// Package world provides the level grid, tile kinds and positions.
package world

// TileKind identifies what occupies a grid cell.
type TileKind int

const (
	// Wall blocks movement and line of sight.
	Wall TileKind = iota
	// Empty is open floor.
	Empty
	// Goal ends the level when the player stands on it.
	Goal
	// LockedDoor is passable only while the player holds the key with the same ID.
	LockedDoor
	// Key adds its ID to the player's inventory when entered.
	Key
	// HookPoint is one end of a grapple pair, matched by ID.
	HookPoint
	// BridgeGap is impassable until a bridge is built over it.
	BridgeGap
	// BridgeBuilt is a finished bridge.
	BridgeBuilt
	// GuardSpawn marks where a guard starts. Walkable floor afterwards.
	GuardSpawn
	// PlayerSpawn marks where the player starts. Walkable floor afterwards.
	PlayerSpawn
	// Log is a bridge-building resource picked up on entry.
	Log
)

// String returns a lowercase name for the tile kind.
func (k TileKind) String() string {
	switch k {
	case Wall:
		return "wall"
	case Empty:
		return "empty"
	case Goal:
		return "goal"
	case LockedDoor:
		return "locked_door"
	case Key:
		return "key"
	case HookPoint:
		return "hook_point"
	case BridgeGap:
		return "bridge_gap"
	case BridgeBuilt:
		return "bridge_built"
	case GuardSpawn:
		return "guard_spawn"
	case PlayerSpawn:
		return "player_spawn"
	case Log:
		return "log"
	default:
		return "unknown"
	}
}

// Tile is the content of a single grid cell.
// ID pairs keys with doors and hook points with each other.
// Cost is the number of logs a BridgeGap needs.
type Tile struct {
	Kind TileKind
	ID   int
	Cost int
}

// Convenience constructors used by the level decoder and tests.
var (
	WallTile  = Tile{Kind: Wall}
	EmptyTile = Tile{Kind: Empty}
	GoalTile  = Tile{Kind: Goal}
	LogTile   = Tile{Kind: Log}
)

// KeyTile returns a key tile with the given ID.
func KeyTile(id int) Tile { return Tile{Kind: Key, ID: id} }

// DoorTile returns a locked door opened by the key with the given ID.
func DoorTile(id int) Tile { return Tile{Kind: LockedDoor, ID: id} }

// HookTile returns one end of hook pair id.
func HookTile(id int) Tile { return Tile{Kind: HookPoint, ID: id} }

// GapTile returns a bridge gap costing the given number of logs.
func GapTile(cost int) Tile { return Tile{Kind: BridgeGap, Cost: cost} }

// KeySet reports whether a key ID is held.
type KeySet interface {
	Has(id int) bool
}

// IsPassable reports whether an entity holding keys may stand on t.
// A nil KeySet holds no keys.
func IsPassable(t Tile, keys KeySet) bool {
	switch t.Kind {
	case Wall, BridgeGap:
		return false
	case LockedDoor:
		return keys != nil && keys.Has(t.ID)
	default:
		return true
	}
}

// BlocksSight reports whether t stops line of sight and grapple lines.
func (t Tile) BlocksSight() bool {
	return t.Kind == Wall
}
