package ctdf

type Direction string

const (
	DirectionNorthbound Direction = "northbound"
	DirectionSouthbound Direction = "southbound"
)

// Directions lists every supported direction in display order
var Directions = []Direction{DirectionNorthbound, DirectionSouthbound}

func (d Direction) IsValid() bool {
	return d == DirectionNorthbound || d == DirectionSouthbound
}
