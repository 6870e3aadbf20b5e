// Package ansi interprets the minimal ANSI escape subset used by classic
// CP437 ANSI art (SGR colors plus cursor motion) into a sparse cell grid,
// and reserializes grids back into the escape subset modern terminals
// reliably honor.
package ansi

import "sort"

// Cell is one glyph placed on the grid: column, character and the compact
// color-pair id active when it was written.
type Cell struct {
	X    int
	Ch   rune
	Pair int
}

// Grid is a sparse mapping of row index to the cells written on that row.
// Rows with no glyphs are absent. Cells within a row are kept in stream
// order, NOT sorted by column: consumers must use SortedRow before
// rendering or reserializing. The grid is built once by Decode and is
// read-only afterwards.
type Grid struct {
	Rows map[int][]Cell
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{Rows: make(map[int][]Cell)}
}

// Height returns 1 + the highest populated row index, or 1 for an empty
// grid.
func (g *Grid) Height() int {
	maxRow := 0
	for y := range g.Rows {
		if y > maxRow {
			maxRow = y
		}
	}
	return maxRow + 1
}

// Width returns the widest populated extent: the maximum over all rows of
// (highest column index + 1).
func (g *Grid) Width() int {
	maxWidth := 0
	for _, cells := range g.Rows {
		for _, c := range cells {
			if c.X+1 > maxWidth {
				maxWidth = c.X + 1
			}
		}
	}
	return maxWidth
}

// RowIndexes returns the populated row indexes in ascending order.
func (g *Grid) RowIndexes() []int {
	rows := make([]int, 0, len(g.Rows))
	for y := range g.Rows {
		rows = append(rows, y)
	}
	sort.Ints(rows)
	return rows
}

// SortedRow returns a copy of row y's cells ordered by column. The sort
// is stable so that cells written later in the stream sort after earlier
// ones at the same column; drawing them in order reproduces terminal
// overwrite semantics.
func (g *Grid) SortedRow(y int) []Cell {
	cells := append([]Cell(nil), g.Rows[y]...)
	sort.SliceStable(cells, func(i, j int) bool { return cells[i].X < cells[j].X })
	return cells
}
