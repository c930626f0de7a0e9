package game

// Direction is one of the four headings a light cycle can hold.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

var directionVectors = map[Direction]Cell{
	DirUp:    {X: 0, Y: -1},
	DirDown:  {X: 0, Y: 1},
	DirLeft:  {X: -1, Y: 0},
	DirRight: {X: 1, Y: 0},
}

var oppositeDirections = map[Direction]Direction{
	DirUp:    DirDown,
	DirDown:  DirUp,
	DirLeft:  DirRight,
	DirRight: DirLeft,
}

// ParseDirection validates a wire direction value.
func ParseDirection(raw string) (Direction, bool) {
	d := Direction(raw)
	_, ok := directionVectors[d]
	return d, ok
}

func (d Direction) Vector() Cell {
	return directionVectors[d]
}

func (d Direction) Opposite() Direction {
	return oppositeDirections[d]
}

// Cell is a grid coordinate. It doubles as a direction unit vector.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Cell) Add(v Cell) Cell {
	return Cell{X: c.X + v.X, Y: c.Y + v.Y}
}

func inBounds(c Cell) bool {
	return c.X >= 0 && c.X < GridSize && c.Y >= 0 && c.Y < GridSize
}

type spawnPoint struct {
	cell Cell
	dir  Direction
}

// spawnPoints is the fixed spawn table: corners first, then edge
// midpoints, all facing inward. Slots are assigned in join order.
func spawnPoints() []spawnPoint {
	edge := GridSize - 5
	mid := GridSize / 2
	return []spawnPoint{
		{cell: Cell{X: 4, Y: 4}, dir: DirRight},
		{cell: Cell{X: edge, Y: edge}, dir: DirLeft},
		{cell: Cell{X: edge, Y: 4}, dir: DirDown},
		{cell: Cell{X: 4, Y: edge}, dir: DirUp},
		{cell: Cell{X: mid, Y: 4}, dir: DirDown},
		{cell: Cell{X: mid, Y: edge}, dir: DirUp},
		{cell: Cell{X: 4, Y: mid}, dir: DirRight},
		{cell: Cell{X: edge, Y: mid}, dir: DirLeft},
	}
}
