// Package ledger keeps the clues a detective has collected, ordered and
// without duplicates.
//
// The ledger is an unbalanced binary search tree ordered by byte-wise string
// comparison. Clue text is stored exactly as given: no case folding and no
// Unicode normalization.
package ledger

import "iter"

type node struct {
	text        string
	left, right *node
}

// Ledger is an ordered set of clue texts. The zero value is empty and ready
// to use. It is not safe for concurrent use.
type Ledger struct {
	root *node
	size int
}

// New returns an empty ledger.
func New() *Ledger { return &Ledger{} }

// Insert adds text to the ledger. It reports false when an equal text is
// already present, in which case the ledger is unchanged.
func (l *Ledger) Insert(text string) bool {
	link := &l.root
	for *link != nil {
		n := *link
		switch {
		case text == n.text:
			return false
		case text < n.text:
			link = &n.left
		default:
			link = &n.right
		}
	}
	*link = &node{text: text}
	l.size++
	return true
}

// Contains reports whether text has been inserted.
func (l *Ledger) Contains(text string) bool {
	n := l.root
	for n != nil {
		switch {
		case text == n.text:
			return true
		case text < n.text:
			n = n.left
		default:
			n = n.right
		}
	}
	return false
}

// Len returns the number of distinct clues.
func (l *Ledger) Len() int { return l.size }

// InOrder returns the clues in ascending order. Each call starts a fresh
// traversal, so sequences obtained from the same ledger do not interfere.
func (l *Ledger) InOrder() iter.Seq[string] {
	return func(yield func(string) bool) {
		inOrder(l.root, yield)
	}
}

func inOrder(n *node, yield func(string) bool) bool {
	if n == nil {
		return true
	}
	return inOrder(n.left, yield) && yield(n.text) && inOrder(n.right, yield)
}

// Clues returns a snapshot of the ledger in ascending order.
func (l *Ledger) Clues() []string {
	out := make([]string, 0, l.size)
	for c := range l.InOrder() {
		out = append(out, c)
	}
	return out
}
