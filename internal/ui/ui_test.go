package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/samdwyer/ghostblade/internal/game"
	"github.com/samdwyer/ghostblade/internal/interact"
	"github.com/samdwyer/ghostblade/internal/level"
	"github.com/samdwyer/ghostblade/internal/world"
)

func TestCommandFor(t *testing.T) {
	tests := []struct {
		name string
		want game.Command
	}{
		{"w", game.MoveUp},
		{"UP", game.MoveUp},
		{"s", game.MoveDown},
		{"a", game.MoveLeft},
		{" d ", game.MoveRight},
		{"east", game.MoveRight},
		{"e", game.Interact},
		{"f", game.UseAbility},
		{"space", game.UseAbility},
		{"q", game.QuitCommand},
		{"esc", game.QuitCommand},
	}

	for _, tt := range tests {
		got, ok := CommandFor(tt.name)
		if !ok || got != tt.want {
			t.Errorf("CommandFor(%q) = %s, %v; want %s", tt.name, got, ok, tt.want)
		}
	}

	if _, ok := CommandFor("dance"); ok {
		t.Error("Expected no binding for dance")
	}
}

func TestLayoutWideRunes(t *testing.T) {
	got := layout(2, "a世\u200bb")
	want := []placed{
		{col: 2, r: 'a', width: 1},
		{col: 3, r: '世', width: 2},
		{col: 5, r: 'b', width: 1},
	}

	if len(got) != len(want) {
		t.Fatalf("layout returned %d cells, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTileGlyphsMatchLevelFiles(t *testing.T) {
	tests := []struct {
		tile world.Tile
		want rune
	}{
		{world.WallTile, '#'},
		{world.EmptyTile, '.'},
		{world.Tile{Kind: world.PlayerSpawn}, '.'},
		{world.Tile{Kind: world.GuardSpawn}, '.'},
		{world.GoalTile, 'X'},
		{world.KeyTile(2), 'b'},
		{world.DoorTile(3), 'C'},
		{world.HookTile(7), '7'},
		{world.GapTile(1), '~'},
		{world.Tile{Kind: world.BridgeBuilt}, '='},
		{world.LogTile, 'L'},
	}

	for _, tt := range tests {
		if got := tileGlyph(tt.tile); got != tt.want {
			t.Errorf("tileGlyph(%s) = %q, want %q", tt.tile.Kind, got, tt.want)
		}
	}
}

func TestActionMessages(t *testing.T) {
	tests := []struct {
		res  game.TurnResult
		want string
	}{
		{game.TurnResult{Command: game.MoveRight, Action: interact.Result{Applied: true, Effect: interact.EffectMoved}}, ""},
		{game.TurnResult{Command: game.MoveRight, Action: interact.Result{Applied: true, Effect: interact.EffectKey, ID: 1}}, "You pick up key a."},
		{game.TurnResult{Command: game.MoveUp, Action: interact.Rejected(interact.ReasonLocked)}, "The door is locked."},
		{game.TurnResult{Command: game.UseAbility, Action: interact.Rejected(interact.ReasonNoTarget)}, "No hook within reach."},
		{game.TurnResult{Command: game.Interact, Action: interact.Rejected(interact.ReasonNoTarget)}, "There is nothing to build on here."},
		{game.TurnResult{Command: game.Interact, Action: interact.Rejected(interact.ReasonInsufficientLogs)}, "You need more logs to build here."},
	}

	for _, tt := range tests {
		if got := actionMessage(tt.res); got != tt.want {
			t.Errorf("actionMessage(%+v) = %q, want %q", tt.res.Action, got, tt.want)
		}
	}
}

func TestTextRender(t *testing.T) {
	lvl, err := level.Decode("t.yaml", []byte("name: Tiny\nmap: |\n  #####\n  #@aG#\n  #X..#\n  #####\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	s, err := game.NewSession(context.Background(), lvl, 1)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	var out bytes.Buffer
	front := NewText(strings.NewReader(""), &out)
	front.Render(game.View{Snapshot: s.Snapshot(), LevelCount: 1})

	got := out.String()
	for _, want := range []string{"Level 1/1: Tiny", "#@aR#", "#X..#"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render output missing %q:\n%s", want, got)
		}
	}
}

func TestTextNextCommand(t *testing.T) {
	var out bytes.Buffer
	front := NewText(strings.NewReader("\n  \njump\nd\n"), &out)

	cmd, err := front.NextCommand(context.Background())
	if err != nil {
		t.Fatalf("NextCommand failed: %v", err)
	}
	if cmd != game.MoveRight {
		t.Errorf("Expected move_right, got %s", cmd)
	}
	if !strings.Contains(out.String(), `Unknown command "jump"`) {
		t.Errorf("Expected unknown command notice, got:\n%s", out.String())
	}

	if _, err := front.NextCommand(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("Expected EOF at end of input, got %v", err)
	}
}

func TestTextNextCommandCancelled(t *testing.T) {
	in, w := io.Pipe()
	defer w.Close()

	var out bytes.Buffer
	front := NewText(in, &out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nothing is ever written, so the read stays blocked.
	if _, err := front.NextCommand(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled while input blocks, got %v", err)
	}

	log, _ := test.NewNullLogger()
	levels := level.MustLoadPack(context.Background(), level.Embedded())
	sum, err := game.NewRunner(levels, front, log, 1).Run(ctx, 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sum.Quit {
		t.Errorf("Expected interrupted run to quit, got %+v", sum)
	}
}

func TestTextPlaysFirstLevel(t *testing.T) {
	levels := level.MustLoadPack(context.Background(), level.Embedded())
	log, _ := test.NewNullLogger()

	var out bytes.Buffer
	front := NewText(strings.NewReader("d\nd\nd\ns\nd\ns\ns\na\n"), &out)

	sum, err := game.NewRunner(levels[:1], front, log, 1).Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sum.Cleared {
		t.Fatalf("Expected first level cleared, got %+v\n%s", sum, out.String())
	}
	for _, want := range []string{"You pick up key a.", "Key a opens the door.", "All levels cleared!"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Output missing %q", want)
		}
	}
}
