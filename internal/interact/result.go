// Package interact applies the player's actions to the grid: movement,
// keys, doors, log pickups, bridges and grapple hooks.
package interact

// Effect is what an applied action did.
type Effect int

const (
	EffectNone Effect = iota
	EffectMoved
	EffectKey
	EffectDoor
	EffectLog
	EffectBridge
	EffectGrapple
)

// String returns a lowercase effect name.
func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectMoved:
		return "moved"
	case EffectKey:
		return "key"
	case EffectDoor:
		return "door"
	case EffectLog:
		return "log"
	case EffectBridge:
		return "bridge"
	case EffectGrapple:
		return "grapple"
	default:
		return "unknown"
	}
}

// Reason explains why an action was rejected.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonBlocked
	ReasonLocked
	ReasonOutOfBounds
	ReasonNoTarget
	ReasonInsufficientLogs
	ReasonUnpaired
	ReasonPathBlocked
	ReasonAtDestination
	ReasonInvalid
)

// String returns a lowercase reason name.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonBlocked:
		return "blocked"
	case ReasonLocked:
		return "locked"
	case ReasonOutOfBounds:
		return "out_of_bounds"
	case ReasonNoTarget:
		return "no_target"
	case ReasonInsufficientLogs:
		return "insufficient_logs"
	case ReasonUnpaired:
		return "unpaired"
	case ReasonPathBlocked:
		return "path_blocked"
	case ReasonAtDestination:
		return "at_destination"
	case ReasonInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Result is the outcome of one player action. A rejected action leaves
// the level untouched; it is a value, not an error.
type Result struct {
	Applied bool
	Effect  Effect
	Reason  Reason
	ID      int // Key, door or hook ID involved, if any
}

func applied(e Effect, id int) Result {
	return Result{Applied: true, Effect: e, ID: id}
}

// Rejected returns a result for an action that changed nothing.
func Rejected(r Reason) Result {
	return Result{Reason: r}
}
