package world

// Offset is a (row, col) step from a cell to one of its neighbors.
type Offset struct {
	DRow, DCol int
}

// Offsets lists the neighbor directions in the order they are scanned and
// drawn. There are seven: (+1,-1) is not part of the set.
var Offsets = [7]Offset{
	{+1, 0},
	{+1, +1},
	{0, +1},
	{-1, +1},
	{-1, 0},
	{-1, -1},
	{0, -1},
}

// Grid is a fixed-size height x width array of cells indexed [row][col],
// with no wraparound at the edges.
type Grid struct {
	height, width int
	cells         []Cell
}

// NewGrid returns a grid where every cell is empty.
func NewGrid(height, width int) *Grid {
	if height < 0 || width < 0 {
		panic("world: negative grid dimension")
	}
	return &Grid{
		height: height,
		width:  width,
		cells:  make([]Cell, height*width),
	}
}

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// Get returns the cell at (row, col). The coordinate must be in bounds.
func (g *Grid) Get(row, col int) Cell {
	return g.cells[g.index(row, col)]
}

// Set stores c at (row, col). The coordinate must be in bounds.
func (g *Grid) Set(row, col int, c Cell) {
	g.cells[g.index(row, col)] = c
}

// Neighbor applies o to (row, col) and reports whether the result is in bounds.
func (g *Grid) Neighbor(row, col int, o Offset) (int, int, bool) {
	r, c := row+o.DRow, col+o.DCol
	return r, c, g.InBounds(r, c)
}

// Fill sets every cell to c.
func (g *Grid) Fill(c Cell) {
	for i := range g.cells {
		g.cells[i] = c
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{height: g.height, width: g.width, cells: make([]Cell, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.height != other.height || g.width != other.width {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// CopyRGBA writes each cell's display color into pix as 4 bytes per cell in
// row-major order. pix must hold at least 4*Height*Width bytes.
func (g *Grid) CopyRGBA(pix []byte) {
	for i, c := range g.cells {
		col := c.Color()
		pix[4*i] = col.R
		pix[4*i+1] = col.G
		pix[4*i+2] = col.B
		pix[4*i+3] = col.A
	}
}

func (g *Grid) index(row, col int) int {
	if !g.InBounds(row, col) {
		panic("world: cell index out of range")
	}
	return row*g.width + col
}
