package stage

// Event names a transition point reported to the EventSink.
type Event int

const (
	EventJump Event = iota
	EventButton
	EventTeleport
	EventOrb
	EventDeath
	EventCleared
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventJump:
		return "jump"
	case EventButton:
		return "button"
	case EventTeleport:
		return "teleport"
	case EventOrb:
		return "orb"
	case EventDeath:
		return "death"
	case EventCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// EventSink receives fire-and-forget notifications. The controller never
// branches on the sink's behaviour.
type EventSink interface {
	Notify(ev Event, at Coord)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(ev Event, at Coord)

// Notify calls f(ev, at).
func (f EventSinkFunc) Notify(ev Event, at Coord) { f(ev, at) }

type nopSink struct{}

func (nopSink) Notify(Event, Coord) {}

// Handle is an opaque drawable obtained from a VisualFactory.
type Handle any

// VisualFactory hands out drawables per actor kind. It is called once per
// pool slot when a stage is loaded.
type VisualFactory interface {
	NewVisual(kind ActorKind) Handle
}

type nopVisuals struct{}

func (nopVisuals) NewVisual(ActorKind) Handle { return nil }

// Layout is the initial data of one stage.
type Layout struct {
	ID      string
	Name    string
	Width   int
	Height  int
	Static  []Code
	Overlay []Code
}

// Grid builds a fresh grid from the layout. Short layers are zero padded.
func (l Layout) Grid() *Grid {
	g := NewGrid(l.Width, l.Height)
	copy(g.Static, l.Static)
	copy(g.Overlay, l.Overlay)
	return g
}

// TileSource provides stage layouts by index.
type TileSource interface {
	StageCount() int
	Stage(index int) (Layout, error)
}
