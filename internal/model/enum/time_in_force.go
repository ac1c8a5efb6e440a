package enum

// TimeInForce IOC, GTC
type TimeInForce uint8

const (
	_time_in_force_beg TimeInForce = iota
	TimeInForceIOC
	TimeInForceGTC
	_time_in_force_end
)

func (t TimeInForce) IsAvailable() bool {
	return t > _time_in_force_beg && t < _time_in_force_end
}

func (t TimeInForce) String() string {
	switch t {
	case TimeInForceIOC:
		return "IOC"
	case TimeInForceGTC:
		return "GTC"
	default:
		return "Unknown"
	}
}
