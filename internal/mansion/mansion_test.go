package mansion_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sleuth/internal/mansion"
)

// hall → (kitchen → pantry), (library → (study → vault))
func sampleSpecs() []mansion.RoomSpec {
	return []mansion.RoomSpec{
		{ID: "hall", Name: "Hall de Entrada", Left: "kitchen", Right: "library"},
		{ID: "kitchen", Name: "Cozinha", Clue: "Faca suja", Left: "pantry"},
		{ID: "pantry", Name: "Despensa", Clue: "Pegadas de lama"},
		{ID: "library", Name: "Biblioteca", Left: "study"},
		{ID: "study", Name: "Escritorio", Clue: "Bilhete rasgado", Right: "vault"},
		{ID: "vault", Name: "Cofre Secreto", Clue: "Documento confidencial"},
	}
}

func TestBuildLinksTree(t *testing.T) {
	m, err := mansion.Build("hall", sampleSpecs())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Len() != 6 {
		t.Errorf("Len = %d, want 6", m.Len())
	}
	root := m.Root()
	if root.Name() != "Hall de Entrada" {
		t.Errorf("root name = %q", root.Name())
	}
	if got := root.Left().Left().Clue(); got != "Pegadas de lama" {
		t.Errorf("hall.left.left clue = %q", got)
	}
	if got := root.Right().Left().Right().Name(); got != "Cofre Secreto" {
		t.Errorf("hall.right.left.right = %q", got)
	}
	if root.Right().Right() != nil {
		t.Error("library should have no right door")
	}
	if !root.Left().Left().IsLeaf() {
		t.Error("pantry should be a leaf")
	}
}

func TestWalkPreOrder(t *testing.T) {
	m, err := mansion.Build("hall", sampleSpecs())
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	var depths []int
	m.Walk(func(r *mansion.Room, depth int) bool {
		names = append(names, r.Name())
		depths = append(depths, depth)
		return true
	})
	want := []string{"Hall de Entrada", "Cozinha", "Despensa", "Biblioteca", "Escritorio", "Cofre Secreto"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("walk order (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2, 1, 2, 3}, depths); diff != "" {
		t.Errorf("depths (-want +got):\n%s", diff)
	}
}

func TestWalkStopsEarly(t *testing.T) {
	m, _ := mansion.Build("hall", sampleSpecs())
	n := 0
	m.Walk(func(*mansion.Room, int) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("visited %d rooms, want 2", n)
	}
}

func TestIDDefaultsToName(t *testing.T) {
	m, err := mansion.Build("Hall", []mansion.RoomSpec{
		{Name: "Hall", Right: "Garden"},
		{Name: "Garden", Clue: "Luva perdida"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if m.Root().Right().Clue() != "Luva perdida" {
		t.Errorf("garden not linked by name")
	}
}

func TestSingleRoomIsLegal(t *testing.T) {
	m, err := mansion.Build("only", []mansion.RoomSpec{{ID: "only", Name: "Sotao"}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !m.Root().IsLeaf() {
		t.Error("single room should be a leaf")
	}
}

func TestCollectOnce(t *testing.T) {
	m, _ := mansion.Build("hall", sampleSpecs())
	kitchen := m.Root().Left()

	clue, ok := kitchen.Collect()
	if !ok || clue != "Faca suja" {
		t.Fatalf("first Collect = %q, %v", clue, ok)
	}
	if kitchen.HasClue() || kitchen.Clue() != "" {
		t.Error("clue should be empty after collection")
	}
	if clue, ok := kitchen.Collect(); ok || clue != "" {
		t.Errorf("second Collect = %q, %v, want empty", clue, ok)
	}
}

func TestBuildRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		root  string
		specs []mansion.RoomSpec
		want  error
	}{
		{"no rooms", "a", nil, mansion.ErrEmpty},
		{"missing root", "x", []mansion.RoomSpec{{ID: "a", Name: "A"}}, mansion.ErrNoRoot},
		{"empty root", "", []mansion.RoomSpec{{ID: "a", Name: "A"}}, mansion.ErrNoRoot},
		{"unnamed room", "a", []mansion.RoomSpec{{ID: "a"}}, mansion.ErrNoName},
		{"duplicate id", "a", []mansion.RoomSpec{{ID: "a", Name: "A"}, {ID: "a", Name: "B"}}, mansion.ErrDuplicate},
		{"unknown child", "a", []mansion.RoomSpec{{ID: "a", Name: "A", Left: "nope"}}, mansion.ErrUnknownRoom},
		{"self loop", "a", []mansion.RoomSpec{
			{ID: "a", Name: "A", Left: "b"},
			{ID: "b", Name: "B", Right: "b"},
		}, mansion.ErrShared},
		{"door back to root", "a", []mansion.RoomSpec{
			{ID: "a", Name: "A", Left: "b"},
			{ID: "b", Name: "B", Left: "a"},
		}, mansion.ErrShared},
		{"shared child", "a", []mansion.RoomSpec{
			{ID: "a", Name: "A", Left: "b", Right: "c"},
			{ID: "b", Name: "B", Left: "d"},
			{ID: "c", Name: "C", Left: "d"},
			{ID: "d", Name: "D"},
		}, mansion.ErrShared},
		{"same child both doors", "a", []mansion.RoomSpec{
			{ID: "a", Name: "A", Left: "b", Right: "b"},
			{ID: "b", Name: "B"},
		}, mansion.ErrShared},
		{"detached cycle", "a", []mansion.RoomSpec{
			{ID: "a", Name: "A"},
			{ID: "b", Name: "B", Left: "c"},
			{ID: "c", Name: "C", Left: "b"},
		}, mansion.ErrUnreachable},
		{"orphan", "a", []mansion.RoomSpec{
			{ID: "a", Name: "A"},
			{ID: "b", Name: "B"},
		}, mansion.ErrUnreachable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := mansion.Build(tc.root, tc.specs)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Build error = %v, want %v", err, tc.want)
			}
			if m != nil {
				t.Error("expected nil map on error")
			}
		})
	}
}
