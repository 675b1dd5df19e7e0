package walk

import "strings"

// CellState is the occupancy state of a single grid cell.
type CellState uint8

const (
	// Unvisited marks a cell the trail has not claimed.
	Unvisited CellState = iota
	// Visited marks a cell that belongs to the trail.
	Visited
)

// CellPosition represents the position of a cell in the grid.
type CellPosition struct {
	Row int // Row index of the cell
	Col int // Col index of the cell
}

// Grid is a square occupancy matrix. Within a run cells only ever move from
// Unvisited to Visited, and only the engine writes them; external code gets
// read access for rendering and export.
type Grid struct {
	size  int
	cells [][]CellState
}

func newGrid(size int) *Grid {
	cells := make([][]CellState, size)
	for i := range cells {
		cells[i] = make([]CellState, size)
	}
	return &Grid{
		size:  size,
		cells: cells,
	}
}

// Size returns the grid dimension (the grid is Size x Size).
func (g *Grid) Size() int {
	return g.size
}

// InBound checks if the given position is inside the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.size && col >= 0 && col < g.size
}

// At returns the state of the cell at the given position.
func (g *Grid) At(row, col int) CellState {
	return g.cells[row][col]
}

// mark sets a cell to Visited. There is no inverse within a run.
func (g *Grid) mark(pos CellPosition) {
	g.cells[pos.Row][pos.Col] = Visited
}

// VisitedCells collects every Visited cell in row-major order, row ascending
// then column ascending.
func (g *Grid) VisitedCells() []CellPosition {
	var cells []CellPosition
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if g.cells[row][col] == Visited {
				cells = append(cells, CellPosition{Row: row, Col: col})
			}
		}
	}
	return cells
}

// String renders the grid as ASCII, one row per line, '#' for Visited cells
// and '.' for Unvisited ones.
func (g *Grid) String() string {
	var output strings.Builder
	for row := 0; row < g.size; row++ {
		for col := 0; col < g.size; col++ {
			if g.cells[row][col] == Visited {
				output.WriteByte('#')
			} else {
				output.WriteByte('.')
			}
		}
		output.WriteByte('\n')
	}
	return output.String()
}
