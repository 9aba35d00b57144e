package level

import "errors"

// Load-time errors. A level that fails any check never reaches a session.
var (
	ErrMalformed     = errors.New("malformed level")
	ErrMissingSpawn  = errors.New("level needs exactly one player spawn")
	ErrMissingGoal   = errors.New("level needs at least one goal")
	ErrUnmatchedDoor = errors.New("locked door has no matching key")
	ErrUnpairedHook  = errors.New("hook point is not part of an aligned pair")
	ErrBadGuard      = errors.New("invalid guard definition")
	ErrNoLevels      = errors.New("no levels found")
)
