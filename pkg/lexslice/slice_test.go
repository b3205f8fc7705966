package lexslice

import "testing"

func TestStringSlice_Text(t *testing.T) {
	host := "the matrix reloaded"
	s := New(host, 4, 6, 1)
	if got := s.Text(host); got != "matrix" {
		t.Fatalf("Text() = %q, want %q", got, "matrix")
	}
	if s.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", s.Len())
	}
	if s.Position != 1 {
		t.Fatalf("Position = %d, want 1", s.Position)
	}
}

func TestHashText_StableAndDistinct(t *testing.T) {
	a := HashText("matrix")
	b := HashText("matrix")
	c := HashText("reloaded")
	if a != b {
		t.Fatalf("HashText not stable: %d != %d", a, b)
	}
	if a == c {
		t.Fatalf("HashText collided for distinct inputs")
	}
}

func TestNew_CachesHash(t *testing.T) {
	host := "matrix"
	s := New(host, 0, len(host), 0)
	if s.Hash != HashText(host) {
		t.Fatalf("New did not cache hash: got %d want %d", s.Hash, HashText(host))
	}
}
