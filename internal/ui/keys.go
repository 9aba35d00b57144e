package ui

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/ghostblade/internal/game"
)

// bindings maps input names to commands. Single letters serve both the
// full-screen and text modes; words are accepted in text mode.
var bindings = map[string]game.Command{
	"up": game.MoveUp, "w": game.MoveUp, "k": game.MoveUp, "north": game.MoveUp,
	"down": game.MoveDown, "s": game.MoveDown, "j": game.MoveDown, "south": game.MoveDown,
	"left": game.MoveLeft, "a": game.MoveLeft, "h": game.MoveLeft, "west": game.MoveLeft,
	"right": game.MoveRight, "d": game.MoveRight, "l": game.MoveRight, "east": game.MoveRight,

	"e": game.Interact, "enter": game.Interact, "interact": game.Interact, "build": game.Interact,
	"f": game.UseAbility, "space": game.UseAbility, "grapple": game.UseAbility, "use": game.UseAbility,

	"q": game.QuitCommand, "esc": game.QuitCommand, "quit": game.QuitCommand, "exit": game.QuitCommand,
}

// CommandFor returns the command bound to name.
func CommandFor(name string) (game.Command, bool) {
	cmd, ok := bindings[strings.ToLower(strings.TrimSpace(name))]
	return cmd, ok
}

// keyName converts a key event into a binding name.
func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "esc"
	case tcell.KeyRune:
		r := ev.Rune()
		if r == ' ' {
			return "space"
		}
		return string(unicode.ToLower(r))
	default:
		return ""
	}
}

// commandForKey maps a key event to a command.
func commandForKey(ev *tcell.EventKey) (game.Command, bool) {
	return CommandFor(keyName(ev))
}
