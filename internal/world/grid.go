package world

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds is returned when a position lies outside the grid.
var ErrOutOfBounds = errors.New("position out of bounds")

// Grid is a fixed-size rectangle of tiles. Its dimensions never change
// after creation; its content does.
type Grid struct {
	rows  int
	cols  int
	tiles [][]Tile
}

// NewGrid creates a grid filled with walls.
func NewGrid(rows, cols int) *Grid {
	tiles := make([][]Tile, rows)
	for r := range tiles {
		tiles[r] = make([]Tile, cols)
		for c := range tiles[r] {
			tiles[r][c] = WallTile
		}
	}

	return &Grid{
		rows:  rows,
		cols:  cols,
		tiles: tiles,
	}
}

// Rows returns the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the grid width.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether p addresses a cell of the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// TileAt returns the tile at p.
func (g *Grid) TileAt(p Position) (Tile, error) {
	if !g.InBounds(p) {
		return Tile{}, fmt.Errorf("tile at (%d,%d): %w", p.Row, p.Col, ErrOutOfBounds)
	}
	return g.tiles[p.Row][p.Col], nil
}

// SetTile replaces the tile at p.
func (g *Grid) SetTile(p Position, t Tile) error {
	if !g.InBounds(p) {
		return fmt.Errorf("set tile at (%d,%d): %w", p.Row, p.Col, ErrOutOfBounds)
	}
	g.tiles[p.Row][p.Col] = t
	return nil
}

// Passable reports whether an entity holding keys may stand on p.
// Out-of-bounds positions are never passable.
func (g *Grid) Passable(p Position, keys KeySet) bool {
	t, err := g.TileAt(p)
	if err != nil {
		return false
	}
	return IsPassable(t, keys)
}

// ClearLine reports whether a and b share a row or column with no
// sight-blocking tile strictly between them. Endpoints are not checked.
func (g *Grid) ClearLine(a, b Position) bool {
	if !a.Aligned(b) || !g.InBounds(a) || !g.InBounds(b) {
		return false
	}

	dr, dc := sign(b.Row-a.Row), sign(b.Col-a.Col)
	for p := (Position{a.Row + dr, a.Col + dc}); p != b; p = (Position{p.Row + dr, p.Col + dc}) {
		if g.tiles[p.Row][p.Col].BlocksSight() {
			return false
		}
	}
	return true
}

// OpenPath reports whether a and b share a row or column and every cell
// from a to b, both ends included, is passable for keys.
func (g *Grid) OpenPath(a, b Position, keys KeySet) bool {
	if !a.Aligned(b) {
		return false
	}

	dr, dc := sign(b.Row-a.Row), sign(b.Col-a.Col)
	for p := a; ; p = (Position{p.Row + dr, p.Col + dc}) {
		if !g.Passable(p, keys) {
			return false
		}
		if p == b {
			return true
		}
	}
}

// Find returns the positions of every tile of the given kind in row-major order.
func (g *Grid) Find(kind TileKind) []Position {
	var out []Position
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.tiles[r][c].Kind == kind {
				out = append(out, Position{r, c})
			}
		}
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	tiles := make([][]Tile, g.rows)
	for r := range g.tiles {
		tiles[r] = make([]Tile, g.cols)
		copy(tiles[r], g.tiles[r])
	}
	return &Grid{rows: g.rows, cols: g.cols, tiles: tiles}
}
