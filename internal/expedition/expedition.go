// Package expedition drives the turn-based walk through a mansion.
//
// An Expedition is a two-state machine, Exploring(room) and Stopped. Each
// turn first looks at the current room (Look): the room's clue, if any, is
// moved into the ledger and the available doors are announced. Then one
// command is applied (Handle). Run ties the two together and is the only
// place that waits on the input collaborator.
package expedition

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"sleuth/internal/ledger"
	"sleuth/internal/mansion"
)

// State is the expedition's machine state.
type State int

const (
	Exploring State = iota
	Stopped
)

func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "exploring"
}

// Source supplies one raw command per turn. Returning io.EOF ends the
// expedition as if the player had stopped.
type Source interface {
	Next(ctx context.Context) (string, error)
}

// Option configures an Expedition.
type Option func(*Expedition)

// WithNotifier sets the output collaborator. The default drops events.
func WithNotifier(n Notifier) Option {
	return func(e *Expedition) { e.notify = n }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Expedition) { e.log = l }
}

// WithLeafStop makes reaching a room with no doors end the expedition.
// The explicit stop command works either way.
func WithLeafStop(on bool) Option {
	return func(e *Expedition) { e.leafStop = on }
}

// Expedition is one player's walk. It holds a cursor into the map, which it
// does not own, and the ledger it fills, which it does.
type Expedition struct {
	current  *mansion.Room
	state    State
	reason   StopReason
	ledger   *ledger.Ledger
	turns    int
	leafStop bool
	notify   Notifier
	log      logrus.FieldLogger
}

// New starts an expedition at the map's root.
func New(m *mansion.Map, opts ...Option) *Expedition {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	e := &Expedition{
		current: m.Root(),
		state:   Exploring,
		ledger:  ledger.New(),
		notify:  discard{},
		log:     quiet,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Current returns the room the player stands in.
func (e *Expedition) Current() *mansion.Room { return e.current }

// State returns the machine state.
func (e *Expedition) State() State { return e.state }

// Reason returns why the expedition stopped, or NotStopped.
func (e *Expedition) Reason() StopReason { return e.reason }

// Ledger returns the clues collected so far.
func (e *Expedition) Ledger() *ledger.Ledger { return e.ledger }

// Turns returns how many turns have begun.
func (e *Expedition) Turns() int { return e.turns }

func (e *Expedition) emit(ev Event) {
	ev.Turn = e.turns
	if ev.Room == "" {
		ev.Room = e.current.Name()
	}
	e.notify.Notify(ev)
}

func (e *Expedition) stop(reason StopReason) {
	e.state = Stopped
	e.reason = reason
	e.log.WithFields(logrus.Fields{
		"room":   e.current.Name(),
		"turn":   e.turns,
		"reason": reason.String(),
		"clues":  e.ledger.Len(),
	}).Info("expedition stopped")
	e.emit(Event{Kind: EventStopped, Reason: reason})
}

// Look begins a turn in the current room: it announces the room, takes
// its clue into the ledger, and lists the doors. Taking is idempotent, so
// looking again at the same room finds nothing. With leaf stop enabled a
// room without doors ends the expedition instead of listing exits.
func (e *Expedition) Look() {
	if e.state == Stopped {
		return
	}
	e.turns++
	r := e.current
	e.emit(Event{Kind: EventEntered})

	if clue, ok := r.Collect(); ok {
		added := e.ledger.Insert(clue)
		e.log.WithFields(logrus.Fields{
			"room": r.Name(),
			"clue": clue,
			"new":  added,
			"turn": e.turns,
		}).Debug("clue collected")
		e.emit(Event{Kind: EventClue, Clue: clue, New: added})
	} else {
		e.emit(Event{Kind: EventNoClue})
	}

	if e.leafStop && r.IsLeaf() {
		e.stop(ReachedLeaf)
		return
	}
	e.emit(Event{Kind: EventExits, Left: roomName(r.Left()), Right: roomName(r.Right())})
}

func roomName(r *mansion.Room) string {
	if r == nil {
		return ""
	}
	return r.Name()
}

// Handle applies one raw command and returns how it was parsed. Blocked
// moves and unrecognised input leave the state untouched. A stopped
// expedition ignores further commands.
func (e *Expedition) Handle(input string) Command {
	cmd := ParseCommand(input)
	if e.state == Stopped {
		return cmd
	}
	switch cmd {
	case Left:
		e.move(cmd, e.current.Left())
	case Right:
		e.move(cmd, e.current.Right())
	case Stop:
		e.stop(Requested)
	default:
		e.log.WithFields(logrus.Fields{"input": input, "turn": e.turns}).Debug("invalid command")
		e.emit(Event{Kind: EventInvalid, Input: input})
	}
	return cmd
}

func (e *Expedition) move(dir Command, next *mansion.Room) {
	if next == nil {
		e.log.WithFields(logrus.Fields{
			"room":      e.current.Name(),
			"direction": dir.String(),
		}).Debug("blocked path")
		e.emit(Event{Kind: EventBlocked, Direction: dir})
		return
	}
	e.current = next
	e.log.WithFields(logrus.Fields{"room": next.Name(), "direction": dir.String()}).Debug("moved")
	e.emit(Event{Kind: EventMoved, Direction: dir})
}

// Run plays turns until the expedition stops. It returns nil when the
// player stops, a leaf ends the walk, or src reports io.EOF. Other source
// errors and context cancellation are returned.
func (e *Expedition) Run(ctx context.Context, src Source) error {
	for e.state == Exploring {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.Look()
		if e.state == Stopped {
			break
		}
		input, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			e.stop(InputClosed)
			break
		}
		if err != nil {
			return fmt.Errorf("expedition: read command: %w", err)
		}
		e.Handle(input)
	}
	return nil
}
