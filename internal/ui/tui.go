package ui

import (
	"context"
	"io"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/ghostblade/internal/game"
)

// TUI is a full-screen frontend. It implements game.Frontend.
type TUI struct {
	screen   *Screen
	renderer *Renderer
	last     game.View
	footer   string
}

// NewTUI takes over the terminal.
func NewTUI() (*TUI, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}
	return newTUI(screen), nil
}

func newTUI(screen *Screen) *TUI {
	return &TUI{
		screen:   screen,
		renderer: NewRenderer(screen),
	}
}

// Render draws v.
func (t *TUI) Render(v game.View) {
	t.last = v
	t.footer = helpLine()
	t.renderer.Render(v, t.footer)
}

// NextCommand waits for a bound key. Unbound keys are ignored.
func (t *TUI) NextCommand(ctx context.Context) (game.Command, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return 0, io.EOF
		case *tcell.EventKey:
			if cmd, ok := commandForKey(ev); ok {
				return cmd, nil
			}
		case *tcell.EventResize:
			t.screen.Sync()
			t.renderer.Render(t.last, t.footer)
		}
	}
}

// Acknowledge shows the outcome of v and waits for any key.
func (t *TUI) Acknowledge(ctx context.Context, v game.View) (bool, error) {
	t.last = v
	t.footer = continueLine()
	t.renderer.Render(v, t.footer)

	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		switch ev := t.screen.PollEvent().(type) {
		case nil:
			return true, io.EOF
		case *tcell.EventKey:
			cmd, ok := commandForKey(ev)
			return ok && cmd == game.QuitCommand, nil
		case *tcell.EventResize:
			t.screen.Sync()
			t.renderer.Render(t.last, t.footer)
		}
	}
}

// Close restores the terminal.
func (t *TUI) Close() {
	t.screen.Close()
}
