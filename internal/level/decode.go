package level

import (
	"fmt"
	"path"
	"strings"

	"github.com/pixil98/go-errors"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/ghostblade/internal/patrol"
	"github.com/samdwyer/ghostblade/internal/world"
)

const (
	defaultBridgeCost = 1
	defaultRadius     = 1
)

// levelFile is the on-disk YAML shape of a level.
type levelFile struct {
	Name       string       `yaml:"name"`
	BridgeCost *int         `yaml:"bridge_cost"`
	StartLogs  int          `yaml:"start_logs"`
	Map        string       `yaml:"map"`
	Guards     []guardFile  `yaml:"guards"`
	Bridges    []bridgeFile `yaml:"bridges"`
}

type patternFile struct {
	Pattern   string  `yaml:"pattern"`
	Waypoints [][]int `yaml:"waypoints"`
	Seed      int64   `yaml:"seed"`
}

type guardFile struct {
	At        []int        `yaml:"at"`
	Pattern   string       `yaml:"pattern"`
	Waypoints [][]int      `yaml:"waypoints"`
	Seed      int64        `yaml:"seed"`
	Detection string       `yaml:"detection"`
	Radius    *int         `yaml:"radius"`
	Base      *patternFile `yaml:"base"`
}

type bridgeFile struct {
	At   []int `yaml:"at"`
	Cost int   `yaml:"cost"`
}

// Decode parses and validates a level file. source names the file in errors
// and supplies the level name when the file has none.
func Decode(source string, data []byte) (*Level, error) {
	var lf levelFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML from %s: %w", source, err)
	}
	return build(source, lf)
}

// glyphTile maps a map character to its tile.
func glyphTile(ch rune, bridgeCost int) (world.Tile, bool) {
	switch {
	case ch == '#':
		return world.WallTile, true
	case ch == '.' || ch == ' ':
		return world.EmptyTile, true
	case ch == '@':
		return world.Tile{Kind: world.PlayerSpawn}, true
	case ch == 'X':
		return world.GoalTile, true
	case ch == 'G':
		return world.Tile{Kind: world.GuardSpawn}, true
	case ch == '~':
		return world.GapTile(bridgeCost), true
	case ch == '=':
		return world.Tile{Kind: world.BridgeBuilt}, true
	case ch == 'L':
		return world.LogTile, true
	case ch >= 'a' && ch <= 'f':
		return world.KeyTile(int(ch-'a') + 1), true
	case ch >= 'A' && ch <= 'F':
		return world.DoorTile(int(ch-'A') + 1), true
	case ch >= '1' && ch <= '9':
		return world.HookTile(int(ch - '0')), true
	default:
		return world.Tile{}, false
	}
}

func mapRows(s string) []string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.TrimRight(s, "\n")
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// build turns a parsed file into a Level, collecting every problem it finds.
func build(source string, lf levelFile) (*Level, error) {
	name := lf.Name
	if name == "" {
		name = strings.TrimSuffix(path.Base(source), path.Ext(source))
	}

	rows := mapRows(lf.Map)
	if len(rows) == 0 {
		return nil, fmt.Errorf("level %s: empty map: %w", name, ErrMalformed)
	}
	width := len([]rune(rows[0]))
	shape := errors.NewErrorList()
	for i, line := range rows {
		if n := len([]rune(line)); n != width {
			shape.Add(fmt.Errorf("row %d has width %d, want %d: %w", i, n, width, ErrMalformed))
		}
	}
	if err := shape.Err(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}

	el := errors.NewErrorList()

	cost := defaultBridgeCost
	if lf.BridgeCost != nil {
		cost = *lf.BridgeCost
	}
	if cost < 0 {
		el.Add(fmt.Errorf("bridge_cost %d is negative: %w", cost, ErrMalformed))
	}
	if lf.StartLogs < 0 {
		el.Add(fmt.Errorf("start_logs %d is negative: %w", lf.StartLogs, ErrMalformed))
	}

	grid := world.NewGrid(len(rows), width)
	for r, line := range rows {
		for c, ch := range []rune(line) {
			t, ok := glyphTile(ch, cost)
			if !ok {
				el.Add(fmt.Errorf("unknown glyph %q at (%d,%d): %w", ch, r, c, ErrMalformed))
				continue
			}
			_ = grid.SetTile(world.Pos(r, c), t)
		}
	}

	var start world.Position
	spawns := grid.Find(world.PlayerSpawn)
	if len(spawns) == 1 {
		start = spawns[0]
	} else {
		el.Add(fmt.Errorf("found %d player spawns: %w", len(spawns), ErrMissingSpawn))
	}

	if len(grid.Find(world.Goal)) == 0 {
		el.Add(ErrMissingGoal)
	}

	el.Add(checkDoors(grid))
	el.Add(checkHooks(grid))
	el.Add(applyBridges(grid, lf.Bridges))

	guards, err := buildGuards(grid, lf.Guards)
	el.Add(err)

	if err := el.Err(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}

	return &Level{
		Name:        name,
		Grid:        grid,
		PlayerStart: start,
		StartLogs:   lf.StartLogs,
		Guards:      guards,
	}, nil
}

func checkDoors(grid *world.Grid) error {
	keys := make(map[int]bool)
	for _, p := range grid.Find(world.Key) {
		t, _ := grid.TileAt(p)
		keys[t.ID] = true
	}

	el := errors.NewErrorList()
	for _, p := range grid.Find(world.LockedDoor) {
		t, _ := grid.TileAt(p)
		if !keys[t.ID] {
			el.Add(fmt.Errorf("door %d at (%d,%d): %w", t.ID, p.Row, p.Col, ErrUnmatchedDoor))
		}
	}
	return el.Err()
}

func checkHooks(grid *world.Grid) error {
	pairs := make(map[int][]world.Position)
	var ids []int
	for _, p := range grid.Find(world.HookPoint) {
		t, _ := grid.TileAt(p)
		if _, seen := pairs[t.ID]; !seen {
			ids = append(ids, t.ID)
		}
		pairs[t.ID] = append(pairs[t.ID], p)
	}

	el := errors.NewErrorList()
	for _, id := range ids {
		ends := pairs[id]
		switch {
		case len(ends) != 2:
			el.Add(fmt.Errorf("hook %d appears %d times: %w", id, len(ends), ErrUnpairedHook))
		case !ends[0].Aligned(ends[1]):
			el.Add(fmt.Errorf("hook %d ends (%d,%d) and (%d,%d) share no row or column: %w",
				id, ends[0].Row, ends[0].Col, ends[1].Row, ends[1].Col, ErrUnpairedHook))
		}
	}
	return el.Err()
}

func applyBridges(grid *world.Grid, bridges []bridgeFile) error {
	el := errors.NewErrorList()
	for i, b := range bridges {
		p, err := parsePosition(grid, b.At)
		if err != nil {
			el.Add(fmt.Errorf("bridge %d: %w", i, err))
			continue
		}
		t, _ := grid.TileAt(p)
		if t.Kind != world.BridgeGap {
			el.Add(fmt.Errorf("bridge %d at (%d,%d) is on %s, not a gap: %w", i, p.Row, p.Col, t.Kind, ErrMalformed))
			continue
		}
		if b.Cost < 0 {
			el.Add(fmt.Errorf("bridge %d cost %d is negative: %w", i, b.Cost, ErrMalformed))
			continue
		}
		_ = grid.SetTile(p, world.GapTile(b.Cost))
	}
	return el.Err()
}

// buildGuards assigns IDs to guard spawns in row-major order and attaches
// their authored definitions. Spawns without one wander randomly.
func buildGuards(grid *world.Grid, entries []guardFile) ([]GuardSpec, error) {
	el := errors.NewErrorList()

	byPos := make(map[world.Position]*guardFile)
	for i := range entries {
		p, err := parsePosition(grid, entries[i].At)
		if err != nil {
			el.Add(fmt.Errorf("guard entry %d: %w: %w", i, ErrBadGuard, err))
			continue
		}
		if t, _ := grid.TileAt(p); t.Kind != world.GuardSpawn {
			el.Add(fmt.Errorf("guard entry %d at (%d,%d) is not on a guard spawn: %w", i, p.Row, p.Col, ErrBadGuard))
			continue
		}
		if _, dup := byPos[p]; dup {
			el.Add(fmt.Errorf("guard entry %d at (%d,%d) duplicates another entry: %w", i, p.Row, p.Col, ErrBadGuard))
			continue
		}
		byPos[p] = &entries[i]
	}

	var specs []GuardSpec
	for i, p := range grid.Find(world.GuardSpawn) {
		spec, err := guardSpec(grid, i+1, p, byPos[p])
		if err != nil {
			el.Add(err)
			continue
		}
		specs = append(specs, spec)
	}

	return specs, el.Err()
}

func guardSpec(grid *world.Grid, id int, at world.Position, gf *guardFile) (GuardSpec, error) {
	spec := GuardSpec{
		ID:        id,
		Start:     at,
		Pattern:   PatternSpec{Kind: patrol.KindRandom},
		Detection: patrol.Detection{Mode: patrol.Adjacency, Radius: defaultRadius},
	}
	if gf == nil {
		return spec, nil
	}

	el := errors.NewErrorList()

	pat, err := patternSpec(grid, at, patternFile{Pattern: gf.Pattern, Waypoints: gf.Waypoints, Seed: gf.Seed})
	el.Add(err)

	switch {
	case gf.Base != nil && pat.Kind != patrol.KindChase:
		el.Add(fmt.Errorf("base pattern is only valid for chase guards"))
	case gf.Base != nil:
		base, err := patternSpec(grid, at, *gf.Base)
		if err != nil {
			el.Add(fmt.Errorf("base: %w", err))
		} else if base.Kind == patrol.KindChase {
			el.Add(fmt.Errorf("base pattern cannot be chase"))
		} else {
			pat.Base = &base
		}
	}
	spec.Pattern = pat

	if gf.Detection != "" {
		m, err := patrol.ParseMode(gf.Detection)
		el.Add(err)
		spec.Detection.Mode = m
	}
	if gf.Radius != nil {
		if *gf.Radius < 0 {
			el.Add(fmt.Errorf("radius %d is negative", *gf.Radius))
		}
		spec.Detection.Radius = *gf.Radius
	}

	if err := el.Err(); err != nil {
		return GuardSpec{}, fmt.Errorf("guard %d at (%d,%d): %w: %w", id, at.Row, at.Col, ErrBadGuard, err)
	}
	return spec, nil
}

// patternSpec validates a pattern for a guard starting at start.
func patternSpec(grid *world.Grid, start world.Position, pf patternFile) (PatternSpec, error) {
	kind := patrol.KindRandom
	if pf.Pattern != "" {
		k, err := patrol.ParseKind(pf.Pattern)
		if err != nil {
			return PatternSpec{}, err
		}
		kind = k
	}

	el := errors.NewErrorList()
	wps := make([]world.Position, 0, len(pf.Waypoints))
	for i, raw := range pf.Waypoints {
		p, err := parsePosition(grid, raw)
		if err != nil {
			el.Add(fmt.Errorf("waypoint %d: %w", i, err))
			continue
		}
		if t, _ := grid.TileAt(p); t.Kind == world.Wall || t.Kind == world.BridgeGap {
			el.Add(fmt.Errorf("waypoint %d at (%d,%d) is on %s", i, p.Row, p.Col, t.Kind))
			continue
		}
		wps = append(wps, p)
	}

	if kind == patrol.KindLinear || kind == patrol.KindLoop {
		switch {
		case len(pf.Waypoints) == 0:
			el.Add(fmt.Errorf("%s pattern needs at least one waypoint", kind))
		case len(wps) == len(pf.Waypoints):
			el.Add(checkRoute(grid, kind, start, wps))
		}
	}

	return PatternSpec{Kind: kind, Waypoints: wps, Seed: pf.Seed}, el.Err()
}

// checkRoute rejects routes a guard cannot walk. Guards step greedily
// toward their next waypoint, so every leg, including the one from the
// start and the loop's closing leg, must be a straight line of cells a
// guard without keys may enter.
func checkRoute(grid *world.Grid, kind patrol.Kind, start world.Position, wps []world.Position) error {
	type leg struct{ from, to world.Position }
	legs := []leg{{start, wps[0]}}
	for i := 1; i < len(wps); i++ {
		legs = append(legs, leg{wps[i-1], wps[i]})
	}
	if kind == patrol.KindLoop && len(wps) > 1 {
		legs = append(legs, leg{wps[len(wps)-1], wps[0]})
	}

	el := errors.NewErrorList()
	for _, l := range legs {
		if !grid.OpenPath(l.from, l.to, nil) {
			el.Add(fmt.Errorf("route from (%d,%d) to (%d,%d) is not a straight open line",
				l.from.Row, l.from.Col, l.to.Row, l.to.Col))
		}
	}
	return el.Err()
}

func parsePosition(grid *world.Grid, v []int) (world.Position, error) {
	if len(v) != 2 {
		return world.Position{}, fmt.Errorf("position %v is not [row, col]: %w", v, ErrMalformed)
	}
	p := world.Pos(v[0], v[1])
	if !grid.InBounds(p) {
		return world.Position{}, fmt.Errorf("position (%d,%d): %w", p.Row, p.Col, world.ErrOutOfBounds)
	}
	return p, nil
}
