// Package game runs level sessions: it advances turns, decides outcomes and
// drives a level pack through a frontend.
package game

// Outcome is the state of a level session after a turn.
type Outcome int

const (
	// Continue means the level is still in play.
	Continue Outcome = iota
	// Won means the player reached a goal.
	Won
	// Lost means a guard caught the player.
	Lost
	// Quit means the player abandoned the level.
	Quit
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has ended.
func (o Outcome) Terminal() bool {
	return o != Continue
}

// Command is one player input for one turn.
type Command int

const (
	MoveUp Command = iota
	MoveDown
	MoveLeft
	MoveRight
	Interact
	UseAbility
	QuitCommand
)

// String returns a lowercase command name.
func (c Command) String() string {
	switch c {
	case MoveUp:
		return "move_up"
	case MoveDown:
		return "move_down"
	case MoveLeft:
		return "move_left"
	case MoveRight:
		return "move_right"
	case Interact:
		return "interact"
	case UseAbility:
		return "use_ability"
	case QuitCommand:
		return "quit"
	default:
		return "unknown"
	}
}
