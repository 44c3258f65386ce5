package selection

import (
	"slices"
	"testing"
)

func TestAddDeduplicates(t *testing.T) {
	s := New()
	if !s.Add("tomato") {
		t.Fatal("first add should succeed")
	}
	if s.Add("tomato") {
		t.Fatal("second add should be a no-op")
	}
	if got := s.Names(); !slices.Equal(got, []string{"tomato"}) {
		t.Fatalf("names = %v", got)
	}

	// Exact equality: case differences are distinct names.
	if !s.Add("Tomato") {
		t.Fatal("case-different name should be added")
	}
	if s.Add("") {
		t.Fatal("empty name should be ignored")
	}
}

func TestInsertionOrder(t *testing.T) {
	s := New()
	for _, n := range []string{"basil", "tomato", "garlic", "basil"} {
		s.Add(n)
	}
	want := []string{"basil", "tomato", "garlic"}
	if got := s.Names(); !slices.Equal(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	if s.Joined() != "basil,tomato,garlic" {
		t.Fatalf("joined = %q", s.Joined())
	}
}

func TestRemove(t *testing.T) {
	s := New()
	s.Add("tomato")
	s.Add("basil")

	if s.Remove("onion") {
		t.Fatal("removing an absent name should be a no-op")
	}
	if got := s.Names(); !slices.Equal(got, []string{"tomato", "basil"}) {
		t.Fatalf("set changed by no-op remove: %v", got)
	}

	if !s.Remove("tomato") {
		t.Fatal("expected remove to report a change")
	}
	if s.Contains("tomato") || s.Len() != 1 {
		t.Fatalf("tomato still present: %v", s.Names())
	}
}

func TestRemoveAt(t *testing.T) {
	s := New()
	s.Add("a")
	s.Add("b")
	s.Add("c")

	tests := []struct {
		idx    int
		want   string
		wantOK bool
	}{
		{-1, "", false},
		{3, "", false},
		{1, "b", true},
		{0, "a", true},
	}
	for _, tt := range tests {
		got, ok := s.RemoveAt(tt.idx)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("RemoveAt(%d) = %q, %v", tt.idx, got, ok)
		}
	}
	if got := s.Names(); !slices.Equal(got, []string{"c"}) {
		t.Fatalf("names = %v", got)
	}
}

func TestCanSearch(t *testing.T) {
	s := New()
	if s.CanSearch() {
		t.Fatal("empty set must not be searchable")
	}
	s.Add("egg")
	if !s.CanSearch() {
		t.Fatal("non-empty set must be searchable")
	}
	s.Remove("egg")
	if s.CanSearch() {
		t.Fatal("emptied set must not be searchable")
	}
}

func TestNamesReturnsCopy(t *testing.T) {
	s := New()
	s.Add("egg")
	got := s.Names()
	got[0] = "spam"
	if !s.Contains("egg") {
		t.Fatal("Names leaked internal slice")
	}
}
