package object

// Direction is one of the four unit moves on the grid.
// The zero value is not a valid direction.
type Direction uint8

const (
	North Direction = iota + 1 // (0,-1)
	South                      // (0, 1)
	West                       // (-1,0)
	East                       // (1, 0)
)

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= North && d <= East
}

// Delta returns the (dx, dz) unit vector for d.
func (d Direction) Delta() (dx, dz int) {
	switch d {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case West:
		return -1, 0
	case East:
		return 1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case West:
		return East
	case East:
		return West
	default:
		return d
	}
}

// String returns the compass name of d.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return "none"
	}
}
