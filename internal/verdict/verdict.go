// Package verdict weighs collected clues against an accusation.
package verdict

import (
	"iter"

	"sleuth/internal/suspects"
)

// DefaultThreshold is how many incriminating clues make a case.
const DefaultThreshold = 2

// Clues is an ordered set of collected clue texts.
type Clues interface {
	InOrder() iter.Seq[string]
}

// Resolver maps a clue to the suspect it incriminates, reporting false
// for clues with no recorded suspect.
type Resolver interface {
	Resolve(clue string) (string, bool)
}

// Outcome is the binary judgment.
type Outcome int

const (
	InsufficientEvidence Outcome = iota
	SufficientEvidence
)

func (o Outcome) String() string {
	if o == SufficientEvidence {
		return "sufficient evidence"
	}
	return "insufficient evidence"
}

// Finding is one clue and who it points to.
type Finding struct {
	Clue    string `yaml:"clue"`
	Suspect string `yaml:"suspect"`
	Matches bool   `yaml:"matches"`
}

// Verdict is the result of judging one accusation.
type Verdict struct {
	Accused   string
	Threshold int
	Evidence  int
	// Findings holds every clue in ascending order.
	Findings []Finding
}

// Sufficient reports whether the evidence reaches the threshold.
func (v Verdict) Sufficient() bool { return v.Evidence >= v.Threshold }

// Outcome returns the judgment.
func (v Verdict) Outcome() Outcome {
	if v.Sufficient() {
		return SufficientEvidence
	}
	return InsufficientEvidence
}

// Judge resolves every clue once and counts those whose suspect equals
// accused exactly. Names are compared byte for byte; "cozinheira" does not
// match "Cozinheira". Unresolved clues show as suspects.Unknown and never
// count, even against an accused literally named "Unknown".
func Judge(clues Clues, index Resolver, accused string, threshold int) Verdict {
	v := Verdict{Accused: accused, Threshold: threshold}
	for c := range clues.InOrder() {
		s, ok := index.Resolve(c)
		if !ok {
			s = suspects.Unknown
		}
		hit := ok && s == accused
		if hit {
			v.Evidence++
		}
		v.Findings = append(v.Findings, Finding{Clue: c, Suspect: s, Matches: hit})
	}
	return v
}
