package engine

// Listener is notified synchronously after the engine has changed state.
// Implementations must not call back into the engine from a callback.
type Listener interface {
	GameDidBegin(e *Engine)
	GameDidEnd(e *Engine)
	ShapeDidLand(e *Engine)
	ShapeDidMove(e *Engine)
	ShapeDidDrop(e *Engine)
	GameDidLevelUp(e *Engine)
}

// EventKind names a listener notification.
type EventKind int

const (
	EventGameBegan EventKind = iota
	EventGameEnded
	EventShapeLanded
	EventShapeMoved
	EventShapeDropped
	EventLevelUp
)

// String returns a human-readable name for the event.
func (k EventKind) String() string {
	switch k {
	case EventGameBegan:
		return "GameBegan"
	case EventGameEnded:
		return "GameEnded"
	case EventShapeLanded:
		return "ShapeLanded"
	case EventShapeMoved:
		return "ShapeMoved"
	case EventShapeDropped:
		return "ShapeDropped"
	case EventLevelUp:
		return "LevelUp"
	default:
		return "Unknown"
	}
}

// Event is a notification captured as a value, with the score and level the
// engine had when it was emitted.
type Event struct {
	Kind  EventKind
	Score int
	Level int
}

// Queue is a Listener that records events for later processing. It lets a
// controller react to events after the engine call returns instead of from
// inside the callback.
type Queue struct {
	events []Event
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) push(kind EventKind, e *Engine) {
	q.events = append(q.events, Event{Kind: kind, Score: e.Score(), Level: e.Level()})
}

func (q *Queue) GameDidBegin(e *Engine)   { q.push(EventGameBegan, e) }
func (q *Queue) GameDidEnd(e *Engine)     { q.push(EventGameEnded, e) }
func (q *Queue) ShapeDidLand(e *Engine)   { q.push(EventShapeLanded, e) }
func (q *Queue) ShapeDidMove(e *Engine)   { q.push(EventShapeMoved, e) }
func (q *Queue) ShapeDidDrop(e *Engine)   { q.push(EventShapeDropped, e) }
func (q *Queue) GameDidLevelUp(e *Engine) { q.push(EventLevelUp, e) }

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Drain returns the pending events in emission order and empties the queue.
func (q *Queue) Drain() []Event {
	events := q.events
	q.events = nil
	return events
}

// Kinds returns the kinds of the pending events without draining them.
func (q *Queue) Kinds() []EventKind {
	kinds := make([]EventKind, len(q.events))
	for i, ev := range q.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

var _ Listener = (*Queue)(nil)
