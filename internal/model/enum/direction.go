package enum

// Direction buy, sell
type Direction uint8

const (
	_direction_beg Direction = iota
	DirectionBuy
	DirectionSell
	_direction_end
)

func (d Direction) IsAvailable() bool {
	return d > _direction_beg && d < _direction_end
}

// Sign is +1 for buy, -1 for sell and 0 otherwise.
func (d Direction) Sign() float64 {
	switch d {
	case DirectionBuy:
		return 1
	case DirectionSell:
		return -1
	default:
		return 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirectionBuy:
		return "Buy"
	case DirectionSell:
		return "Sell"
	default:
		return "Unknown"
	}
}
