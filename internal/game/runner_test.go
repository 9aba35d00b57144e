package game

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/samdwyer/ghostblade/internal/level"
)

// scriptedFrontend replays commands and records what it was shown.
type scriptedFrontend struct {
	cmds      []Command
	renders   int
	acks      []View
	quitOnAck bool
}

func (f *scriptedFrontend) Render(View) { f.renders++ }

func (f *scriptedFrontend) NextCommand(ctx context.Context) (Command, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(f.cmds) == 0 {
		return 0, io.EOF
	}
	c := f.cmds[0]
	f.cmds = f.cmds[1:]
	return c, nil
}

func (f *scriptedFrontend) Acknowledge(_ context.Context, v View) (bool, error) {
	f.acks = append(f.acks, v)
	return f.quitOnAck, nil
}

func testPack(t *testing.T) []*level.Level {
	t.Helper()
	return []*level.Level{
		mustLevel(t, "name: One\nmap: |\n  @.X\n"),
		mustLevel(t, `
name: Two
map: |
  #####
  #@.G#
  #...#
  #X..#
  #####
guards:
  - at: [1, 3]
    pattern: linear
    waypoints: [[1, 3], [3, 3]]
`),
	}
}

func TestRunnerClearsPack(t *testing.T) {
	log, hook := test.NewNullLogger()
	front := &scriptedFrontend{cmds: []Command{
		MoveRight, MoveRight, // level one
		MoveDown, MoveDown, // level two, behind the guard's back
	}}

	sum, err := NewRunner(testPack(t), front, log, 1).Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !sum.Cleared || sum.LevelsCleared != 2 || sum.Quit {
		t.Errorf("Unexpected summary %+v", sum)
	}
	if sum.Turns != 4 {
		t.Errorf("Expected 4 turns, got %d", sum.Turns)
	}
	if len(front.acks) != 2 || !front.acks[1].Cleared {
		t.Errorf("Expected two acknowledgements with the last marked cleared, got %d", len(front.acks))
	}
	if hook.LastEntry() == nil || hook.LastEntry().Message != "all levels cleared" {
		t.Errorf("Expected final log entry, got %v", hook.LastEntry())
	}
}

func TestRunnerRetriesLostLevel(t *testing.T) {
	log, _ := test.NewNullLogger()
	front := &scriptedFrontend{cmds: []Command{
		MoveRight, MoveDown, MoveRight, // walk into the guard
		MoveDown, MoveDown, // second attempt
	}}

	pack := testPack(t)[1:]
	sum, err := NewRunner(pack, front, log, 1).Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sum.Captures != 1 || sum.LevelsCleared != 1 {
		t.Errorf("Expected one capture then a clear, got %+v", sum)
	}
	if len(front.acks) != 2 || front.acks[0].Snapshot.Outcome != Lost || front.acks[1].Attempt != 2 {
		t.Errorf("Unexpected acknowledgements: %+v", front.acks)
	}
}

func TestRunnerQuitAndEOF(t *testing.T) {
	log, _ := test.NewNullLogger()

	front := &scriptedFrontend{cmds: []Command{MoveRight, QuitCommand}}
	sum, err := NewRunner(testPack(t), front, log, 1).Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sum.Quit || sum.LevelsCleared != 0 {
		t.Errorf("Expected quit with nothing cleared, got %+v", sum)
	}

	front = &scriptedFrontend{}
	sum, err = NewRunner(testPack(t), front, log, 1).Run(context.Background(), 1)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sum.Quit {
		t.Errorf("Expected end of input to quit, got %+v", sum)
	}
}

func TestRunnerInterruptQuits(t *testing.T) {
	log, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	front := &scriptedFrontend{cmds: []Command{MoveRight, MoveRight}}
	sum, err := NewRunner(testPack(t), front, log, 1).Run(ctx, 0)
	if err != nil {
		t.Fatalf("Expected an interrupt to end the run cleanly, got %v", err)
	}
	if !sum.Quit || sum.LevelsCleared != 0 || sum.Turns != 0 {
		t.Errorf("Expected quit before any turn, got %+v", sum)
	}
}

func TestRunnerQuitOnAcknowledge(t *testing.T) {
	log, _ := test.NewNullLogger()
	front := &scriptedFrontend{cmds: []Command{MoveRight, MoveRight}, quitOnAck: true}

	sum, err := NewRunner(testPack(t), front, log, 1).Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sum.Quit || sum.LevelsCleared != 0 {
		t.Errorf("Expected quit at the first acknowledgement, got %+v", sum)
	}
}

func TestRunnerStartOutOfRange(t *testing.T) {
	log, _ := test.NewNullLogger()
	log.SetLevel(logrus.PanicLevel)

	if _, err := NewRunner(testPack(t), &scriptedFrontend{}, log, 1).Run(context.Background(), 5); err == nil {
		t.Error("Expected error for out-of-range start level")
	}
}
