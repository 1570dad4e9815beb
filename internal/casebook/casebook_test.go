package casebook_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sleuth/internal/casebook"
	"sleuth/internal/fixture"
)

const scenario = `
root: a
rooms:
  - {id: a, name: Sala, clue: Faca suja}
suspects:
  - {clue: Faca suja, suspect: Cozinheira}
`

// withTempHome redirects os.UserHomeDir to a temp directory for the duration of the test.
func withTempHome(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	return tmp
}

func TestOpenCreatesDir(t *testing.T) {
	home := withTempHome(t)
	c, err := casebook.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	want := filepath.Join(home, ".sleuth", "cases")
	if c.Dir != want {
		t.Errorf("Dir = %s, want %s", c.Dir, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("casebook dir not created: %v", err)
	}
}

func TestAddListRemove(t *testing.T) {
	withTempHome(t)
	c, err := casebook.Open()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"zeta", "alpha"} {
		if err := c.Add(name, []byte(scenario), fixture.Options{}); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}
	// Duplicate must fail.
	if err := c.Add("alpha", []byte(scenario), fixture.Options{}); err == nil {
		t.Fatal("expected error on duplicate Add")
	}

	names, err := c.List()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"alpha", "zeta"}, names); diff != "" {
		t.Errorf("List (-want +got):\n%s", diff)
	}

	if err := c.Remove("zeta"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := c.Remove("zeta"); err == nil {
		t.Error("expected error removing a missing case")
	}
	names, _ = c.List()
	if diff := cmp.Diff([]string{"alpha"}, names); diff != "" {
		t.Errorf("List after remove (-want +got):\n%s", diff)
	}
}

func TestAddRejects(t *testing.T) {
	withTempHome(t)
	c, _ := casebook.Open()
	tests := []struct {
		name string
		data string
	}{
		{"", scenario},
		{"../escape", scenario},
		{".hidden", scenario},
		{"broken", "rooms: ["},
		{"cyclic", "root: a\nrooms:\n  - {id: a, name: A, left: a}\n"},
	}
	for _, tc := range tests {
		if err := c.Add(tc.name, []byte(tc.data), fixture.Options{}); err == nil {
			t.Errorf("Add(%q) should fail", tc.name)
		}
	}
	names, _ := c.List()
	if len(names) != 0 {
		t.Errorf("rejected cases were installed: %v", names)
	}
}

func TestResolve(t *testing.T) {
	withTempHome(t)
	c, _ := casebook.Open()
	if err := c.Add("mansao", []byte(scenario), fixture.Options{}); err != nil {
		t.Fatal(err)
	}

	got, err := c.Resolve("mansao")
	if err != nil {
		t.Fatalf("Resolve by name: %v", err)
	}
	if got != c.Path("mansao") {
		t.Errorf("Resolve = %s", got)
	}

	file := filepath.Join(t.TempDir(), "local.yaml")
	if err := os.WriteFile(file, []byte(scenario), 0o644); err != nil {
		t.Fatal(err)
	}
	if got, err := c.Resolve(file); err != nil || got != file {
		t.Errorf("Resolve(file) = %s, %v", got, err)
	}

	if _, err := c.Resolve("nowhere"); err == nil {
		t.Error("expected error for unknown case")
	}
}
