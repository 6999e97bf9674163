package gesture

// Direction is the classified outcome of a gesture. Translation and scale
// directions share one type; a recognizer only produces the subset that
// matches its kind.
type Direction int

const (
	None Direction = iota
	Left
	Right
	Up
	Down
	ZoomIn
	ZoomOut
)

var directionNames = map[Direction]string{
	None:    "none",
	Left:    "left",
	Right:   "right",
	Up:      "up",
	Down:    "down",
	ZoomIn:  "zoomin",
	ZoomOut: "zoomout",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "unknown"
}

// ParseDirection is the inverse of Direction.String
func ParseDirection(s string) (Direction, bool) {
	for d, name := range directionNames {
		if name == s {
			return d, true
		}
	}
	return None, false
}

// Phase is the lifecycle stage reported in a notification
type Phase int

const (
	Begin Phase = iota
	Update
	Cancelled
	Finished
)

var phaseNames = map[Phase]string{
	Begin:     "begin",
	Update:    "update",
	Cancelled: "cancelled",
	Finished:  "finished",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePhase is the inverse of Phase.String
func ParsePhase(s string) (Phase, bool) {
	for p, name := range phaseNames {
		if name == s {
			return p, true
		}
	}
	return Begin, false
}

// Kind identifies the family a recognizer belongs to. Swipe and Pinch are
// shared by the touch-screen and touchpad sides.
type Kind int

const (
	Swipe Kind = iota
	Zoom
	DragAndTap
	Pinch
)

var kindNames = map[Kind]string{
	Swipe:      "swipe",
	Zoom:       "zoom",
	DragAndTap: "dragtap",
	Pinch:      "pinch",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return Swipe, false
}

// State is what a touch-screen recognizer reports for a single raw event
type State int

const (
	StateIgnore State = iota
	StateBegin
	StateUpdate
	StateFinished
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIgnore:
		return "ignore"
	case StateBegin:
		return "begin"
	case StateUpdate:
		return "update"
	case StateFinished:
		return "finished"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Notification is a classified gesture event handed to action dispatch
type Notification struct {
	Fingers   int
	Kind      Kind
	Phase     Phase
	Direction Direction
}
