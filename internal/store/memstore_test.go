package store

import (
	"testing"

	"parques/internal/game"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, ok := s.Get("missing"); ok {
		t.Fatal("empty store returned a game")
	}

	g, err := game.New("g1", 2, "u1", game.ColorRed, game.DefaultRules(), nil)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	s.Save(g)

	got, ok := s.Get("g1")
	if !ok || got != g {
		t.Fatalf("Get returned (%v, %v), want the stored game", got, ok)
	}

	s.Delete("g1")
	if _, ok := s.Get("g1"); ok {
		t.Fatal("deleted game is still retrievable")
	}
}
