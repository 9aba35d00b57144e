package ui

import (
	"strings"

	"github.com/leonelquinteros/gotext"

	"github.com/samdwyer/ghostblade/internal/game"
	"github.com/samdwyer/ghostblade/internal/interact"
)

const textDomain = "ghostblade"

// ConfigureLocale loads translations from dir for lang. An empty dir keeps
// the built-in English strings.
func ConfigureLocale(dir, lang string) {
	if dir == "" {
		return
	}
	gotext.Configure(dir, lang, textDomain)
}

// actionMessage describes the last action, or returns "" for a plain step.
func actionMessage(res game.TurnResult) string {
	a := res.Action
	if res.Command == game.QuitCommand {
		return ""
	}
	if a.Applied {
		switch a.Effect {
		case interact.EffectKey:
			return gotext.Get("You pick up key %s.", keyLetter(a.ID))
		case interact.EffectDoor:
			return gotext.Get("Key %s opens the door.", keyLetter(a.ID))
		case interact.EffectLog:
			return gotext.Get("You pick up a log.")
		case interact.EffectBridge:
			return gotext.Get("You build a bridge.")
		case interact.EffectGrapple:
			return gotext.Get("You swing across on the grapple line.")
		default:
			return ""
		}
	}

	switch a.Reason {
	case interact.ReasonBlocked:
		return gotext.Get("Something blocks the way.")
	case interact.ReasonLocked:
		return gotext.Get("The door is locked.")
	case interact.ReasonOutOfBounds:
		return gotext.Get("You cannot leave the map.")
	case interact.ReasonNoTarget:
		if res.Command == game.UseAbility {
			return gotext.Get("No hook within reach.")
		}
		return gotext.Get("There is nothing to build on here.")
	case interact.ReasonInsufficientLogs:
		return gotext.Get("You need more logs to build here.")
	case interact.ReasonUnpaired:
		return gotext.Get("This hook leads nowhere.")
	case interact.ReasonPathBlocked:
		return gotext.Get("A wall blocks the grapple line.")
	case interact.ReasonAtDestination:
		return gotext.Get("You are already there.")
	default:
		return gotext.Get("Nothing happens.")
	}
}

// outcomeMessage announces a finished session.
func outcomeMessage(v game.View) string {
	switch v.Snapshot.Outcome {
	case game.Won:
		if v.Cleared {
			return gotext.Get("All levels cleared!")
		}
		return gotext.Get("Level complete!")
	case game.Lost:
		return gotext.Get("A guard caught you. Try again.")
	case game.Quit:
		return gotext.Get("You slip away into the night.")
	default:
		return ""
	}
}

// statusLine summarises the level, turn and inventory.
func statusLine(v game.View) string {
	s := v.Snapshot
	keys := make([]string, 0, len(s.Player.Keys))
	for _, id := range s.Player.Keys {
		keys = append(keys, keyLetter(id))
	}
	held := strings.Join(keys, " ")
	if held == "" {
		held = "-"
	}
	return gotext.Get("Level %d/%d: %s | Turn %d | Keys %s | Logs %d",
		v.LevelIndex+1, v.LevelCount, s.Level, s.Turn, held, s.Player.Logs)
}

func helpLine() string {
	return gotext.Get("Move: arrows/WASD  Build: e  Grapple: f  Quit: q")
}

func continueLine() string {
	return gotext.Get("Press any key to continue, q to quit.")
}
