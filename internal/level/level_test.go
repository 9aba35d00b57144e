package level

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/pixil98/go-testutil"

	"github.com/samdwyer/ghostblade/internal/patrol"
	"github.com/samdwyer/ghostblade/internal/world"
)

func TestEmbeddedPack(t *testing.T) {
	levels, err := LoadPack(context.Background(), Embedded())
	if err != nil {
		t.Fatalf("Failed to load embedded levels: %v", err)
	}

	names := []string{"First Steps", "The Patrol", "Hooks and Bridges", "Line of Sight"}
	testutil.AssertEqual(t, "level count", len(levels), len(names))
	for i, lvl := range levels {
		if i < len(names) {
			testutil.AssertEqual(t, "level name", lvl.Name, names[i])
		}
	}
}

func TestDecodeValidLevel(t *testing.T) {
	src := `
name: Sample
bridge_cost: 3
start_logs: 2
map: |
  #######
  #@a.A.#
  #1.G.1#
  #G.~.X#
  #######
guards:
  - at: [2, 3]
    pattern: loop
    waypoints: [[2, 3], [2, 4]]
    detection: sight
    radius: 4
bridges:
  - at: [3, 3]
    cost: 5
`
	lvl, err := Decode("sample.yaml", []byte(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	testutil.AssertEqual(t, "name", lvl.Name, "Sample")
	testutil.AssertEqual(t, "start", lvl.PlayerStart, world.Pos(1, 1))
	testutil.AssertEqual(t, "start logs", lvl.StartLogs, 2)
	testutil.AssertEqual(t, "rows", lvl.Grid.Rows(), 5)
	testutil.AssertEqual(t, "cols", lvl.Grid.Cols(), 7)

	gap, _ := lvl.Grid.TileAt(world.Pos(3, 3))
	testutil.AssertEqual(t, "gap cost override", gap.Cost, 5)

	door, _ := lvl.Grid.TileAt(world.Pos(1, 4))
	testutil.AssertEqual(t, "door", door, world.DoorTile(1))

	testutil.AssertEqual(t, "guard count", len(lvl.Guards), 2)

	first := lvl.Guards[0]
	testutil.AssertEqual(t, "guard 1 id", first.ID, 1)
	testutil.AssertEqual(t, "guard 1 start", first.Start, world.Pos(2, 3))
	testutil.AssertEqual(t, "guard 1 pattern", first.Pattern.Kind, patrol.KindLoop)
	testutil.AssertEqual(t, "guard 1 detection", first.Detection, patrol.Detection{Mode: patrol.LineOfSight, Radius: 4})

	second := lvl.Guards[1]
	testutil.AssertEqual(t, "guard 2 id", second.ID, 2)
	testutil.AssertEqual(t, "guard 2 default pattern", second.Pattern.Kind, patrol.KindRandom)
	testutil.AssertEqual(t, "guard 2 default detection", second.Detection, patrol.Detection{Mode: patrol.Adjacency, Radius: 1})
}

func TestDecodeNameFromFile(t *testing.T) {
	lvl, err := Decode("levels/07_vault.yaml", []byte("map: |\n  @X\n"))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	testutil.AssertEqual(t, "name", lvl.Name, "07_vault")
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]struct {
		src    string
		expErr string
	}{
		"empty map": {
			src:    "name: x\n",
			expErr: "empty map",
		},
		"ragged rows": {
			src:    "map: |\n  @X#\n  ##\n",
			expErr: "row 1 has width 2",
		},
		"unknown glyph": {
			src:    "map: |\n  @X?\n",
			expErr: "unknown glyph '?'",
		},
		"no spawn": {
			src:    "map: |\n  .X\n",
			expErr: ErrMissingSpawn.Error(),
		},
		"two spawns": {
			src:    "map: |\n  @X@\n",
			expErr: "found 2 player spawns",
		},
		"no goal": {
			src:    "map: |\n  @..\n",
			expErr: ErrMissingGoal.Error(),
		},
		"door without key": {
			src:    "map: |\n  @BX\n",
			expErr: ErrUnmatchedDoor.Error(),
		},
		"single hook": {
			src:    "map: |\n  @3X\n",
			expErr: "hook 3 appears 1 times",
		},
		"misaligned hooks": {
			src:    "map: |\n  @1.\n  .X1\n",
			expErr: "share no row or column",
		},
		"guard entry off spawn": {
			src:    "map: |\n  @GX\nguards:\n  - at: [0, 0]\n",
			expErr: "is not on a guard spawn",
		},
		"unknown pattern": {
			src:    "map: |\n  @GX\nguards:\n  - at: [0, 1]\n    pattern: teleport\n",
			expErr: `unknown patrol pattern "teleport"`,
		},
		"linear without waypoints": {
			src:    "map: |\n  @GX\nguards:\n  - at: [0, 1]\n    pattern: linear\n",
			expErr: "linear pattern needs at least one waypoint",
		},
		"waypoint in wall": {
			src:    "map: |\n  @GX#\nguards:\n  - at: [0, 1]\n    pattern: loop\n    waypoints: [[0, 3]]\n",
			expErr: "is on wall",
		},
		"waypoint out of bounds": {
			src:    "map: |\n  @GX\nguards:\n  - at: [0, 1]\n    pattern: loop\n    waypoints: [[4, 4]]\n",
			expErr: "out of bounds",
		},
		"route leg through wall": {
			src:    "map: |\n  #####\n  #@.X#\n  #.#.#\n  #.G.#\n  #####\nguards:\n  - at: [3, 2]\n    pattern: linear\n    waypoints: [[3, 2], [1, 2]]\n",
			expErr: "route from (3,2) to (1,2) is not a straight open line",
		},
		"route start off line": {
			src:    "map: |\n  #####\n  #@.X#\n  #...#\n  #.G.#\n  #####\nguards:\n  - at: [3, 2]\n    pattern: linear\n    waypoints: [[1, 1]]\n",
			expErr: "route from (3,2) to (1,1)",
		},
		"loop closing leg off line": {
			src:    "map: |\n  #####\n  #@.X#\n  #...#\n  #.G.#\n  #####\nguards:\n  - at: [3, 2]\n    pattern: loop\n    waypoints: [[3, 2], [3, 3], [1, 3]]\n",
			expErr: "route from (1,3) to (3,2)",
		},
		"chase base through door": {
			src:    "map: |\n  #####\n  #@aX#\n  #.A.#\n  #.G.#\n  #####\nguards:\n  - at: [3, 2]\n    pattern: chase\n    base: {pattern: linear, waypoints: [[3, 2], [1, 2]]}\n",
			expErr: "route from (3,2) to (1,2)",
		},
		"bad detection": {
			src:    "map: |\n  @GX\nguards:\n  - at: [0, 1]\n    detection: smell\n",
			expErr: `unknown detection mode "smell"`,
		},
		"base on non-chase": {
			src:    "map: |\n  @GX\nguards:\n  - at: [0, 1]\n    pattern: random\n    base: {pattern: random}\n",
			expErr: "only valid for chase",
		},
		"bridge override off gap": {
			src:    "map: |\n  @.X\nbridges:\n  - at: [0, 1]\n    cost: 2\n",
			expErr: "not a gap",
		},
		"negative bridge cost": {
			src:    "bridge_cost: -1\nmap: |\n  @~X\n",
			expErr: "bridge_cost -1 is negative",
		},
		"bad yaml": {
			src:    "map: [\n",
			expErr: "failed to parse YAML",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode("test.yaml", []byte(tt.src))
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestDecodeReportsAllProblems(t *testing.T) {
	_, err := Decode("many.yaml", []byte("map: |\n  ..B\n  .1.\n"))
	if err == nil {
		t.Fatal("Expected error")
	}
	for _, want := range []string{
		ErrMissingSpawn.Error(),
		ErrMissingGoal.Error(),
		ErrUnmatchedDoor.Error(),
		"hook 1 appears 1 times",
	} {
		testutil.AssertErrorContains(t, err, want)
	}
}

func TestChaseBaseAndPatterns(t *testing.T) {
	src := `
map: |
  @G.G.X
guards:
  - at: [0, 1]
    pattern: chase
    base:
      pattern: linear
      waypoints: [[0, 1], [0, 2]]
  - at: [0, 3]
    pattern: random
    seed: 99
`
	lvl, err := Decode("chase.yaml", []byte(src))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	chase := lvl.Guards[0]
	if chase.Pattern.Base == nil || chase.Pattern.Base.Kind != patrol.KindLinear {
		t.Fatalf("Expected linear base, got %+v", chase.Pattern.Base)
	}
	p := chase.NewPattern(1)
	testutil.AssertEqual(t, "chase kind", p.Kind(), patrol.KindChase)
	if c, ok := p.(*patrol.Chase); !ok || c.Base == nil || c.Base.Kind() != patrol.KindLinear {
		t.Errorf("Expected chase wrapping linear, got %#v", p)
	}

	random := lvl.Guards[1]
	testutil.AssertEqual(t, "random seed", random.Pattern.Seed, int64(99))
	testutil.AssertEqual(t, "random kind", random.NewPattern(1).Kind(), patrol.KindRandom)
}

func TestLoadPackFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"b.yaml":     {Data: []byte("name: Second\nmap: |\n  @X\n")},
		"a.yaml":     {Data: []byte("name: First\nmap: |\n  X@\n")},
		"readme.txt": {Data: []byte("ignored")},
	}

	levels, err := LoadPack(context.Background(), fsys)
	if err != nil {
		t.Fatalf("LoadPack failed: %v", err)
	}
	testutil.AssertEqual(t, "count", len(levels), 2)
	testutil.AssertEqual(t, "first", levels[0].Name, "First")
	testutil.AssertEqual(t, "second", levels[1].Name, "Second")
}

func TestLoadPackErrors(t *testing.T) {
	_, err := LoadPack(context.Background(), fstest.MapFS{})
	testutil.AssertErrorContains(t, err, ErrNoLevels.Error())

	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("map: |\n  @.\n")},
		"b.yaml": {Data: []byte("map: |\n  ..X\n")},
	}
	_, err = LoadPack(context.Background(), fsys)
	testutil.AssertErrorContains(t, err, "level a")
	testutil.AssertErrorContains(t, err, "level b")
}
