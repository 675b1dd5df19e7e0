package walk

// Direction is a cardinal heading on the grid.
//
// The numeric order is a fixed invariant: adding 1 (mod 4) turns the heading
// a quarter turn clockwise, subtracting 1 turns it counter-clockwise. Move
// selection relies on this order; do not reorder the constants.
type Direction uint8

const (
	Up Direction = iota
	Right
	Down
	Left
)

// directionVectors maps each heading to its unit row/col delta.
var directionVectors = [4]CellPosition{
	Up:    {Row: -1, Col: 0},
	Right: {Row: 0, Col: 1},
	Down:  {Row: 1, Col: 0},
	Left:  {Row: 0, Col: -1},
}

// Vector returns the unit row/col delta of the heading.
func (d Direction) Vector() CellPosition {
	return directionVectors[d]
}

// Turned returns the heading after applying a signed quarter-turn offset.
func (d Direction) Turned(delta int) Direction {
	return Direction((int(d) + delta + 4) % 4)
}

// String returns the heading name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// relMove is one of the three relative moves the agent may attempt on a tick.
type relMove uint8

const (
	moveStraight relMove = iota
	moveLeft
	moveRight
)

// relMoves lists the moves in enumeration order: straight first, then turns.
var relMoves = [3]relMove{moveStraight, moveLeft, moveRight}

// headingDelta returns the signed heading change the move carries.
func (m relMove) headingDelta() int {
	switch m {
	case moveLeft:
		return -1
	case moveRight:
		return 1
	default:
		return 0
	}
}
