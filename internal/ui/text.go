package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"github.com/samdwyer/ghostblade/internal/game"
	"github.com/samdwyer/ghostblade/internal/world"
)

const defaultWidth = 80

// Colours used by the text frontend.
var (
	colorWall    = color.Style{color.FgGray}
	colorFloor   = color.Style{color.FgDarkGray}
	colorPlayer  = color.Style{color.FgYellow, color.OpBold}
	colorGuard   = color.Style{color.FgRed, color.OpBold}
	colorGoal    = color.Style{color.FgGreen, color.OpBold}
	colorItem    = color.Style{color.FgLightYellow}
	colorDoor    = color.Style{color.FgMagenta}
	colorHook    = color.Style{color.FgCyan}
	colorWater   = color.Style{color.FgBlue}
	colorStatus  = color.Style{color.FgWhite, color.OpBold}
	colorDenied  = color.Style{color.FgRed}
	colorSubtle  = color.Style{color.FgGray}
	colorVictory = color.Style{color.FgGreen, color.OpBold}
)

// Text is a line-oriented frontend for pipes, scripts and dumb terminals.
// It reads one command per line and prints the board after every turn.
// It implements game.Frontend.
type Text struct {
	out   io.Writer
	in    *bufio.Scanner
	width int
	plain bool

	// Lines are read on their own goroutine so a blocked read never
	// delays cancellation.
	startRead sync.Once
	lines     chan string
	readErr   error // Set before lines is closed
}

// NewText creates a text frontend. Colour is used only when out is a terminal.
func NewText(in io.Reader, out io.Writer) *Text {
	width := defaultWidth
	plain := true
	if f, ok := out.(*os.File); ok && IsTerminal(f) {
		plain = false
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			width = w
		}
	}
	return &Text{
		out:   out,
		in:    bufio.NewScanner(in),
		width: width,
		plain: plain,
		lines: make(chan string),
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func (t *Text) paint(s color.Style, text string) string {
	if t.plain {
		return text
	}
	return s.Sprint(text)
}

// Render prints the status line, the board and the last action message.
func (t *Text) Render(v game.View) {
	var b strings.Builder

	b.WriteString(t.paint(colorStatus, statusLine(v)))
	b.WriteString("\n")

	snap := v.Snapshot
	for row := 0; row < snap.Grid.Rows(); row++ {
		for col := 0; col < snap.Grid.Cols(); col++ {
			p := world.Pos(row, col)
			b.WriteString(t.paint(t.cellColor(snap, p), string(cellGlyph(snap, p))))
		}
		b.WriteString("\n")
	}

	if v.Last != nil {
		if msg := actionMessage(*v.Last); msg != "" {
			style := colorSubtle
			if !v.Last.Action.Applied {
				style = colorDenied
			}
			b.WriteString(t.paint(style, wordwrap.String(msg, t.width)))
			b.WriteString("\n")
		}
	}
	if msg := outcomeMessage(v); msg != "" {
		style := colorDenied
		if snap.Outcome == game.Won {
			style = colorVictory
		}
		b.WriteString(t.paint(style, wordwrap.String(msg, t.width)))
		b.WriteString("\n")
	}

	fmt.Fprint(t.out, b.String())
}

func (t *Text) cellColor(snap game.Snapshot, p world.Position) color.Style {
	if snap.Player.Pos == p {
		return colorPlayer
	}
	if _, ok := snap.GuardAt(p); ok {
		return colorGuard
	}
	tile, _ := snap.Grid.TileAt(p)
	switch tile.Kind {
	case world.Wall:
		return colorWall
	case world.Goal:
		return colorGoal
	case world.Key, world.Log:
		return colorItem
	case world.LockedDoor:
		return colorDoor
	case world.HookPoint:
		return colorHook
	case world.BridgeGap, world.BridgeBuilt:
		return colorWater
	default:
		return colorFloor
	}
}

// NextCommand reads lines until one names a command. Blank lines are skipped.
// It returns the context's error as soon as ctx is done, even mid-read.
func (t *Text) NextCommand(ctx context.Context) (game.Command, error) {
	t.startRead.Do(func() { go t.readLines() })

	for {
		fmt.Fprint(t.out, "> ")

		var line string
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case l, ok := <-t.lines:
			if !ok {
				if t.readErr != nil {
					return 0, t.readErr
				}
				return 0, io.EOF
			}
			line = l
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if cmd, ok := CommandFor(fields[0]); ok {
			return cmd, nil
		}
		fmt.Fprintln(t.out, t.paint(colorDenied, gotext.Get("Unknown command %q.", fields[0])))
		fmt.Fprintln(t.out, t.paint(colorSubtle, wordwrap.String(helpLine(), t.width)))
	}
}

func (t *Text) readLines() {
	for t.in.Scan() {
		t.lines <- t.in.Text()
	}
	t.readErr = t.in.Err()
	close(t.lines)
}

// Acknowledge prints the final board of a session. Text mode never pauses.
func (t *Text) Acknowledge(_ context.Context, v game.View) (bool, error) {
	t.Render(v)
	return false, nil
}
