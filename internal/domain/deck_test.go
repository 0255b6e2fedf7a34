package domain

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestBuildDeckMintsUniqueOrderedCards(t *testing.T) {
	fronts := make([]string, DeckSize)
	for i := range fronts {
		fronts[i] = fmt.Sprintf("cards/%03d.png", i)
	}

	deck := BuildDeck("cards/back.png", fronts)
	if len(deck) != DeckSize {
		t.Fatalf("deck size = %d, want %d", len(deck), DeckSize)
	}

	seen := make(map[string]bool, len(deck))
	for i, c := range deck {
		if c.ID == "" || seen[c.ID] {
			t.Fatalf("card %d has missing or duplicate id %q", i, c.ID)
		}
		seen[c.ID] = true
		if c.Ordinal != i {
			t.Fatalf("card %d ordinal = %d", i, c.Ordinal)
		}
		if c.Front != fronts[i] {
			t.Fatalf("card %d front = %s, want %s", i, c.Front, fronts[i])
		}
		if !c.FaceDown || c.Orientation != 0 || c.Slot != NoSlot {
			t.Fatalf("card %d not in initial presentation: %+v", i, c)
		}
	}
}

func TestShuffleStackIsAPermutation(t *testing.T) {
	deck := BuildDeck("back.png", []string{"a", "b", "c", "d", "e", "f", "g"})
	before := make(map[string]int, len(deck))
	for _, c := range deck {
		before[c.ID]++
	}

	ShuffleStack(deck, rand.New(rand.NewSource(7)))

	if len(deck) != 7 {
		t.Fatalf("stack length changed to %d", len(deck))
	}
	after := make(map[string]int, len(deck))
	for _, c := range deck {
		after[c.ID]++
	}
	for id, n := range before {
		if after[id] != n {
			t.Fatalf("card %s count changed: %d -> %d", id, n, after[id])
		}
	}
}

func TestSortByOrdinalRestoresOriginalOrder(t *testing.T) {
	deck := BuildDeck("back.png", []string{"a", "b", "c", "d", "e"})
	ShuffleStack(deck, rand.New(rand.NewSource(3)))

	SortByOrdinal(deck)
	for i, c := range deck {
		if c.Ordinal != i {
			t.Fatalf("position %d holds ordinal %d after sort", i, c.Ordinal)
		}
	}
}
