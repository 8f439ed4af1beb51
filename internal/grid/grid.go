// Package grid turns supplier files (XLSX, CSV, PDF, DOCX) into a positional
// cell grid: sparse (row, col, value, style) tuples with no interpretation of
// what the cells mean. Everything above this package reasons about the grid
// only, never about file formats.
package grid

import "sort"

// Cell is one non-empty cell with its position and style flags. The JSON tags
// match the spatial serialization sent to the model-assisted extractors.
type Cell struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Value  string `json:"value"`
	Bold   bool   `json:"is_bold"`
	Merged bool   `json:"is_merged"`
}

// Grid is an immutable, sparse cell grid for one sheet or table.
type Grid struct {
	cells  []Cell
	byPos  map[[2]int]int
	byRow  map[int][]int
	maxRow int
	maxCol int
}

// New builds a grid from cells. Empty-valued cells are dropped; duplicates by
// position keep the first occurrence.
func New(cells []Cell) *Grid {
	g := &Grid{
		byPos: make(map[[2]int]int),
		byRow: make(map[int][]int),
	}
	for _, c := range cells {
		if c.Value == "" {
			continue
		}
		key := [2]int{c.Row, c.Col}
		if _, ok := g.byPos[key]; ok {
			continue
		}
		g.byPos[key] = len(g.cells)
		g.byRow[c.Row] = append(g.byRow[c.Row], len(g.cells))
		g.cells = append(g.cells, c)
		if c.Row > g.maxRow {
			g.maxRow = c.Row
		}
		if c.Col > g.maxCol {
			g.maxCol = c.Col
		}
	}
	return g
}

// Cells returns all cells in insertion order.
func (g *Grid) Cells() []Cell { return g.cells }

// Len is the number of non-empty cells.
func (g *Grid) Len() int { return len(g.cells) }

// MaxRow is the highest row index present.
func (g *Grid) MaxRow() int { return g.maxRow }

// MaxCol is the highest column index present.
func (g *Grid) MaxCol() int { return g.maxCol }

// Value returns the cell value at (row, col), or "" when empty.
func (g *Grid) Value(row, col int) string {
	if i, ok := g.byPos[[2]int{row, col}]; ok {
		return g.cells[i].Value
	}
	return ""
}

// Cell returns the cell at (row, col) and whether it exists.
func (g *Grid) Cell(row, col int) (Cell, bool) {
	if i, ok := g.byPos[[2]int{row, col}]; ok {
		return g.cells[i], true
	}
	return Cell{}, false
}

// Row returns the non-empty cells of a row ordered by column.
func (g *Grid) Row(row int) []Cell {
	idxs := g.byRow[row]
	out := make([]Cell, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, g.cells[i])
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Col < out[b].Col })
	return out
}

// RowIndices returns the indices of non-empty rows in ascending order.
func (g *Grid) RowIndices() []int {
	rows := make([]int, 0, len(g.byRow))
	for r := range g.byRow {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}
