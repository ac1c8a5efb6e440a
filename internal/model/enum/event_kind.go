package enum

// EventKind fill attempt, cancel request
type EventKind uint8

const (
	_event_kind_beg EventKind = iota
	EventFill
	EventCancel
	_event_kind_end
)

func (k EventKind) IsAvailable() bool {
	return k > _event_kind_beg && k < _event_kind_end
}

func (k EventKind) String() string {
	switch k {
	case EventFill:
		return "Fill"
	case EventCancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}
