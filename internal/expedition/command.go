package expedition

import "strings"

// Command is one player instruction for a turn.
type Command int

const (
	Invalid Command = iota
	Left
	Right
	Stop
)

func (c Command) String() string {
	switch c {
	case Left:
		return "left"
	case Right:
		return "right"
	case Stop:
		return "stop"
	default:
		return "invalid"
	}
}

// aliases accepts the English words, their initials, and the Portuguese
// door letters (e/d/s) players of the original mansion are used to.
var aliases = map[string]Command{
	"left":     Left,
	"l":        Left,
	"e":        Left,
	"esquerda": Left,
	"right":    Right,
	"r":        Right,
	"d":        Right,
	"direita":  Right,
	"stop":     Stop,
	"s":        Stop,
	"sair":     Stop,
	"quit":     Stop,
	"q":        Stop,
}

// ParseCommand maps raw player input to a Command. Matching ignores case
// and surrounding space; anything unrecognised is Invalid.
func ParseCommand(input string) Command {
	return aliases[strings.ToLower(strings.TrimSpace(input))]
}
