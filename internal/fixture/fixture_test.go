package fixture_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/charmap"

	"sleuth/internal/fixture"
	"sleuth/internal/mansion"
)

const small = `
title: Small
root: sala
rooms:
  - id: sala
    name: Sala
    left: porao
  - id: porao
    name: Porão
    clue: Garrafa quebrada
suspects:
  - clue: Garrafa quebrada
    suspect: Mordomo
`

func TestDefaultScenario(t *testing.T) {
	sc := fixture.Default()
	if err := sc.Validate(); err != nil {
		t.Fatalf("built-in scenario invalid: %v", err)
	}
	m, err := sc.Mansion()
	if err != nil {
		t.Fatal(err)
	}
	if m.Root().Name() != "Hall de Entrada" {
		t.Errorf("root = %q", m.Root().Name())
	}
	if m.Len() != len(sc.Rooms) {
		t.Errorf("map has %d rooms, scenario lists %d", m.Len(), len(sc.Rooms))
	}
	if got := sc.Unresolved(); len(got) != 0 {
		t.Errorf("built-in clues without suspects: %v", got)
	}
	if sc.Threshold != 2 {
		t.Errorf("Threshold = %d, want 2", sc.Threshold)
	}
}

func TestMansionIsFreshEachCall(t *testing.T) {
	sc := fixture.Default()
	m1, _ := sc.Mansion()
	m1.Root().Left().Collect()
	m2, _ := sc.Mansion()
	if !m2.Root().Left().HasClue() {
		t.Error("second map shares rooms with the first")
	}
}

func TestParseSmall(t *testing.T) {
	sc, err := fixture.Parse([]byte(small), fixture.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sc.Title != "Small" || sc.RootID() != "sala" {
		t.Errorf("title %q root %q", sc.Title, sc.RootID())
	}
	if got := sc.Index().Lookup("Garrafa quebrada"); got != "Mordomo" {
		t.Errorf("Lookup = %q", got)
	}
	if sc.Threshold != 0 || sc.LeafStop {
		t.Errorf("unset options should be zero: %+v", sc)
	}
}

func TestRootDefaultsToFirstRoom(t *testing.T) {
	sc, err := fixture.Parse([]byte("rooms:\n  - name: Sotao\n"), fixture.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if sc.RootID() != "Sotao" {
		t.Errorf("RootID = %q", sc.RootID())
	}
	if err := sc.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestParseLatin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(small))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fixture.Parse(raw, fixture.Options{}); err == nil {
		t.Fatal("expected UTF-8 error without an encoding")
	}
	sc, err := fixture.Parse(raw, fixture.Options{Encoding: "latin1"})
	if err != nil {
		t.Fatalf("Parse latin1: %v", err)
	}
	if got := sc.Rooms[1].Name; got != "Porão" {
		t.Errorf("decoded name = %q, want %q", got, "Porão")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		opts fixture.Options
		want string
	}{
		{"empty", "", fixture.Options{}, "empty scenario"},
		{"unknown key", "rooms: []\nsuspect: []\n", fixture.Options{}, "parse"},
		{"bad yaml", "rooms: [", fixture.Options{}, "parse"},
		{"negative threshold", "threshold: -1\n", fixture.Options{}, "negative"},
		{"unknown encoding", "rooms: []\n", fixture.Options{Encoding: "klingon"}, "encoding"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fixture.Parse([]byte(tc.data), tc.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateMalformedMap(t *testing.T) {
	data := `
root: a
rooms:
  - {id: a, name: A, left: b}
  - {id: b, name: B, left: a}
`
	sc, err := fixture.Parse([]byte(data), fixture.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Validate(); !errors.Is(err, mansion.ErrShared) {
		t.Errorf("Validate = %v, want ErrShared", err)
	}
}

func TestValidateSuspectEntries(t *testing.T) {
	data := "rooms:\n  - name: A\nsuspects:\n  - clue: X\n"
	sc, err := fixture.Parse([]byte(data), fixture.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Validate(); err == nil {
		t.Error("expected error for suspect entry with no suspect")
	}
}

func TestUnresolved(t *testing.T) {
	data := `
rooms:
  - {name: A, clue: Pista um, left: B}
  - {name: B, clue: Pista dois}
suspects:
  - {clue: Pista um, suspect: Mordomo}
`
	sc, err := fixture.Parse([]byte(data), fixture.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Pista dois"}, sc.Unresolved()); diff != "" {
		t.Errorf("Unresolved (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.yaml")
	if err := os.WriteFile(path, []byte(small), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, err := fixture.Load(path, fixture.Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Rooms) != 2 {
		t.Errorf("rooms = %d", len(sc.Rooms))
	}
	if _, err := fixture.Load(filepath.Join(t.TempDir(), "missing.yaml"), fixture.Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}
