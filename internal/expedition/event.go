package expedition

// EventKind classifies a notification sent to the output collaborator.
type EventKind int

const (
	// EventEntered opens every turn with the current room.
	EventEntered EventKind = iota
	// EventClue reports a clue taken from the room.
	EventClue
	// EventNoClue reports a room with nothing (left) to collect.
	EventNoClue
	// EventExits lists the doors available from the current room.
	EventExits
	// EventMoved reports a successful move through a door.
	EventMoved
	// EventBlocked reports a door that does not exist; the player stays put.
	EventBlocked
	// EventInvalid reports unrecognised input; nothing changes.
	EventInvalid
	// EventStopped ends the expedition.
	EventStopped
)

func (k EventKind) String() string {
	switch k {
	case EventEntered:
		return "entered"
	case EventClue:
		return "clue-found"
	case EventNoClue:
		return "no-clue"
	case EventExits:
		return "exits"
	case EventMoved:
		return "moved"
	case EventBlocked:
		return "blocked"
	case EventInvalid:
		return "invalid"
	case EventStopped:
		return "stopped"
	}
	return "unknown"
}

// StopReason says why an expedition reached the Stopped state.
type StopReason int

const (
	NotStopped StopReason = iota
	Requested
	ReachedLeaf
	InputClosed
)

func (r StopReason) String() string {
	switch r {
	case Requested:
		return "requested"
	case ReachedLeaf:
		return "reached-leaf"
	case InputClosed:
		return "input-closed"
	}
	return "not-stopped"
}

// Event is one notification. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind
	Turn int
	// Room is the current room's name after the event.
	Room string
	// Clue and New are set for EventClue; New is false when the same text
	// was already in the ledger from another room.
	Clue string
	New  bool
	// Left and Right name the neighbouring rooms for EventExits ("" = no door).
	Left, Right string
	// Direction is set for EventMoved and EventBlocked.
	Direction Command
	// Input is the raw text for EventInvalid.
	Input  string
	Reason StopReason
}

// Notifier receives expedition events.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

type discard struct{}

func (discard) Notify(Event) {}
