package world

// Position is a cell address. Row grows downward, Col grows rightward.
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}.
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Step returns the neighbouring position in direction d.
func (p Position) Step(d Direction) Position {
	dr, dc := d.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Manhattan returns the taxicab distance between p and q.
func (p Position) Manhattan(q Position) int {
	return abs(p.Row-q.Row) + abs(p.Col-q.Col)
}

// Adjacent reports whether q is one orthogonal step from p.
func (p Position) Adjacent(q Position) bool {
	return p.Manhattan(q) == 1
}

// Aligned reports whether p and q share a row or a column.
func (p Position) Aligned(q Position) bool {
	return p.Row == q.Row || p.Col == q.Col
}

// Neighbors returns the four orthogonal neighbours in North, East, South, West order.
// Positions may be out of bounds.
func (p Position) Neighbors() []Position {
	out := make([]Position, 0, 4)
	for _, d := range AllDirections() {
		out = append(out, p.Step(d))
	}
	return out
}

// Direction represents a cardinal direction.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all directions in a fixed order for iteration.
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns a lowercase direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the row and column offsets for this direction.
func (d Direction) Delta() (rowDelta, colDelta int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
