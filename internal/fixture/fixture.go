// Package fixture loads mystery scenarios: the mansion layout and the
// ground-truth clue → suspect table.
//
// A scenario is a YAML document:
//
//	title: Detective Quest
//	root: hall
//	threshold: 2          # optional, defaults to verdict.DefaultThreshold
//	leaf_stop: false      # optional, end the walk at rooms with no doors
//	rooms:
//	  - id: hall
//	    name: Hall de Entrada
//	    left: cozinha
//	  - id: cozinha
//	    name: Cozinha
//	    clue: Faca suja de geleia
//	suspects:
//	  - clue: Faca suja de geleia
//	    suspect: Cozinheira
//
// Files written by older tools are often Latin-1; Options.Encoding names the
// source encoding and the text is decoded to UTF-8 before parsing.
package fixture

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"sleuth/internal/mansion"
	"sleuth/internal/suspects"
)

//go:embed mansion.yaml
var defaultScenario []byte

// Scenario is one parsed mystery.
type Scenario struct {
	Title     string             `yaml:"title"`
	Root      string             `yaml:"root"`
	Threshold int                `yaml:"threshold,omitempty"`
	LeafStop  bool               `yaml:"leaf_stop,omitempty"`
	Rooms     []mansion.RoomSpec `yaml:"rooms"`
	Suspects  []suspects.Record  `yaml:"suspects"`
}

// Options controls how scenario bytes are read.
type Options struct {
	// Encoding is a WHATWG encoding label such as "latin1" or
	// "windows-1252". Empty means UTF-8.
	Encoding string
}

// Default returns the built-in mansion.
func Default() *Scenario {
	sc, err := Parse(defaultScenario, Options{})
	if err != nil {
		panic("fixture: built-in scenario: " + err.Error())
	}
	return sc
}

// Load reads and parses a scenario file.
func Load(path string, opts Options) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: read %s: %w", path, err)
	}
	sc, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes data into a Scenario. Unknown YAML keys are rejected so a
// misspelt "suspect" does not silently empty the ground truth.
func Parse(data []byte, opts Options) (*Scenario, error) {
	text, err := decode(data, opts.Encoding)
	if err != nil {
		return nil, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(text))
	dec.KnownFields(true)
	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("fixture: empty scenario")
		}
		return nil, fmt.Errorf("fixture: parse: %w", err)
	}
	if sc.Threshold < 0 {
		return nil, fmt.Errorf("fixture: threshold %d is negative", sc.Threshold)
	}
	return &sc, nil
}

func decode(data []byte, label string) ([]byte, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", "utf-8", "utf8":
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("fixture: scenario is not valid UTF-8 (set an encoding such as latin1)")
		}
		return data, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("fixture: encoding %q: %w", label, err)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("fixture: decode %s: %w", label, err)
	}
	return out, nil
}

// RootID returns the entrance room, defaulting to the first room listed.
func (sc *Scenario) RootID() string {
	if sc.Root != "" || len(sc.Rooms) == 0 {
		return sc.Root
	}
	if sc.Rooms[0].ID != "" {
		return sc.Rooms[0].ID
	}
	return sc.Rooms[0].Name
}

// Mansion builds a fresh map. Every call returns new rooms with all clues in
// place, so one scenario can be played more than once.
func (sc *Scenario) Mansion() (*mansion.Map, error) {
	return mansion.Build(sc.RootID(), sc.Rooms)
}

// Index builds the suspect table in file order.
func (sc *Scenario) Index() *suspects.Index {
	return suspects.Build(sc.Suspects)
}

// Validate builds the map and checks the suspect table, returning the first
// problem that would make the scenario unplayable.
func (sc *Scenario) Validate() error {
	if _, err := sc.Mansion(); err != nil {
		return err
	}
	for i, r := range sc.Suspects {
		if r.Clue == "" || r.Suspect == "" {
			return fmt.Errorf("fixture: suspect entry %d needs both clue and suspect", i)
		}
	}
	return nil
}

// Unresolved lists room clues with no entry in the suspect table. Such clues
// are legal red herrings; they resolve to suspects.Unknown.
func (sc *Scenario) Unresolved() []string {
	known := make(map[string]bool, len(sc.Suspects))
	for _, r := range sc.Suspects {
		known[r.Clue] = true
	}
	var out []string
	for _, room := range sc.Rooms {
		if room.Clue != "" && !known[room.Clue] {
			out = append(out, room.Clue)
		}
	}
	return out
}
