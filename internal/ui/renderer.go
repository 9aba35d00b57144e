package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/ghostblade/internal/game"
	"github.com/samdwyer/ghostblade/internal/world"
)

// Layout rows, counted from the top of the screen.
const (
	statusRow = 0
	mapTop    = 2
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws the level, its entities and the status and message lines.
func (r *Renderer) Render(v game.View, footer string) {
	r.screen.Clear()

	r.screen.SetString(0, statusRow, statusLine(v), tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))

	snap := v.Snapshot
	for row := 0; row < snap.Grid.Rows(); row++ {
		for col := 0; col < snap.Grid.Cols(); col++ {
			p := world.Pos(row, col)
			r.screen.SetContent(col, mapTop+row, cellGlyph(snap, p), r.cellStyle(snap, p))
		}
	}

	y := mapTop + snap.Grid.Rows() + 1
	if v.Last != nil {
		if msg := actionMessage(*v.Last); msg != "" {
			style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
			if !v.Last.Action.Applied {
				style = tcell.StyleDefault.Foreground(tcell.ColorRed)
			}
			r.screen.SetString(0, y, msg, style)
		}
	}
	if msg := outcomeMessage(v); msg != "" {
		r.screen.SetString(0, y+1, msg, r.outcomeStyle(snap.Outcome))
	}
	r.screen.SetString(0, y+3, footer, tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}

// cellStyle returns the appropriate style for what is drawn at p.
func (r *Renderer) cellStyle(snap game.Snapshot, p world.Position) tcell.Style {
	if snap.Player.Pos == p {
		fg := tcell.ColorYellow
		if !snap.Player.Alive {
			fg = tcell.ColorRed
		}
		return tcell.StyleDefault.Foreground(fg).Bold(true)
	}
	if _, ok := snap.GuardAt(p); ok {
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	}

	t, _ := snap.Grid.TileAt(p)
	switch t.Kind {
	case world.Wall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.Goal:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case world.Key:
		return tcell.StyleDefault.Foreground(tcell.ColorGold)
	case world.LockedDoor:
		return tcell.StyleDefault.Foreground(tcell.ColorOrange)
	case world.HookPoint:
		return tcell.StyleDefault.Foreground(tcell.ColorAqua)
	case world.BridgeGap:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	case world.BridgeBuilt, world.Log:
		return tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	default:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	}
}

func (r *Renderer) outcomeStyle(o game.Outcome) tcell.Style {
	switch o {
	case game.Won:
		return tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	case game.Lost:
		return tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	default:
		return tcell.StyleDefault
	}
}
