package routing

// ActionKind distinguishes waiting at a stop from riding a bus.
type ActionKind int

const (
	// Wait is waiting at a stop before boarding.
	Wait ActionKind = iota
	// Bus is riding one bus across one or more stops.
	Bus
)

// String returns "Wait" or "Bus", the names used in route responses.
func (k ActionKind) String() string {
	switch k {
	case Wait:
		return "Wait"
	case Bus:
		return "Bus"
	default:
		return "Unknown"
	}
}

// Action is one step of a route. Wait actions set StopName; ride actions
// set BusName and SpanCount. Time is in minutes.
type Action struct {
	Kind      ActionKind
	StopName  string
	BusName   string
	SpanCount int
	Time      float64
}

// Route is a fastest journey between two stops.
type Route struct {
	Actions   []Action
	TotalTime float64
}
