// Package mansion builds the fixed binary map of rooms the detective walks.
//
// The map is a strict tree: every room except the root has exactly one
// parent, and every room is reachable from the root. Rooms are created once
// by Build and never added or removed afterwards; the only mutation is
// Room.Collect, which empties a room's clue the first time it is taken.
package mansion

import (
	"errors"
	"fmt"
)

// Sentinel errors for malformed map fixtures. Build wraps them with the
// offending room so callers can test with errors.Is.
var (
	ErrEmpty       = errors.New("mansion: no rooms")
	ErrNoRoot      = errors.New("mansion: root room not found")
	ErrNoName      = errors.New("mansion: room has no name")
	ErrDuplicate   = errors.New("mansion: duplicate room id")
	ErrUnknownRoom = errors.New("mansion: unknown room reference")
	ErrShared      = errors.New("mansion: room has more than one parent")
	ErrUnreachable = errors.New("mansion: room unreachable from root")
)

// RoomSpec is one fixture entry describing a room and its two doors.
// ID defaults to Name when empty. Left and Right name child IDs; an empty
// reference means there is no door on that side.
type RoomSpec struct {
	ID    string `yaml:"id,omitempty"`
	Name  string `yaml:"name"`
	Clue  string `yaml:"clue,omitempty"`
	Left  string `yaml:"left,omitempty"`
	Right string `yaml:"right,omitempty"`
}

func (s RoomSpec) key() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Name
}

// Room is a node of the mansion map.
type Room struct {
	name  string
	clue  string
	left  *Room
	right *Room
}

// Name returns the room's display name.
func (r *Room) Name() string { return r.name }

// Clue returns the clue still hidden in the room, or "" once collected.
func (r *Room) Clue() string { return r.clue }

// HasClue reports whether the room still holds a clue.
func (r *Room) HasClue() bool { return r.clue != "" }

// Left returns the room behind the left door, or nil.
func (r *Room) Left() *Room { return r.left }

// Right returns the room behind the right door, or nil.
func (r *Room) Right() *Room { return r.right }

// IsLeaf reports whether the room has no doors onward.
func (r *Room) IsLeaf() bool { return r.left == nil && r.right == nil }

// Collect takes the room's clue. It returns the clue and true the first
// time; every later call returns "" and false.
func (r *Room) Collect() (string, bool) {
	if r.clue == "" {
		return "", false
	}
	c := r.clue
	r.clue = ""
	return c, true
}

// Map owns every room of one mansion.
type Map struct {
	root *Room
	size int
}

// Root returns the entrance room.
func (m *Map) Root() *Room { return m.root }

// Len returns the number of rooms.
func (m *Map) Len() int { return m.size }

// Walk visits every room in pre-order (room, left subtree, right subtree),
// passing the room's depth below the root. It stops early when fn returns
// false.
func (m *Map) Walk(fn func(r *Room, depth int) bool) {
	walk(m.root, 0, fn)
}

func walk(r *Room, depth int, fn func(*Room, int) bool) bool {
	if r == nil {
		return true
	}
	if !fn(r, depth) {
		return false
	}
	return walk(r.left, depth+1, fn) && walk(r.right, depth+1, fn)
}

// Build links specs into a tree rooted at the room whose ID is root.
// Any inconsistency aborts construction; a partially valid map is never
// returned.
func Build(root string, specs []RoomSpec) (*Map, error) {
	if len(specs) == 0 {
		return nil, ErrEmpty
	}

	rooms := make(map[string]*Room, len(specs))
	for i, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("%w (entry %d)", ErrNoName, i)
		}
		k := s.key()
		if _, dup := rooms[k]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, k)
		}
		rooms[k] = &Room{name: s.Name, clue: s.Clue}
	}

	top, ok := rooms[root]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoRoot, root)
	}

	// parent records who claimed each child, so a second claim (shared
	// edge, cycle, or a door back to the root) is caught here.
	parent := make(map[string]string, len(specs))
	link := func(from, to string) (*Room, error) {
		if to == "" {
			return nil, nil
		}
		child, ok := rooms[to]
		if !ok {
			return nil, fmt.Errorf("%w: %q from %q", ErrUnknownRoom, to, from)
		}
		if to == root || to == from {
			return nil, fmt.Errorf("%w: %q (door from %q)", ErrShared, to, from)
		}
		if prev, taken := parent[to]; taken {
			return nil, fmt.Errorf("%w: %q (doors from %q and %q)", ErrShared, to, prev, from)
		}
		parent[to] = from
		return child, nil
	}

	for _, s := range specs {
		r := rooms[s.key()]
		var err error
		if r.left, err = link(s.key(), s.Left); err != nil {
			return nil, err
		}
		if r.right, err = link(s.key(), s.Right); err != nil {
			return nil, err
		}
	}

	m := &Map{root: top}
	seen := make(map[*Room]bool, len(rooms))
	m.Walk(func(r *Room, _ int) bool {
		seen[r] = true
		return true
	})
	m.size = len(seen)
	if m.size != len(rooms) {
		for _, s := range specs {
			if !seen[rooms[s.key()]] {
				return nil, fmt.Errorf("%w: %q", ErrUnreachable, s.key())
			}
		}
	}
	return m, nil
}
