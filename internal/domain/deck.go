package domain

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"
)

// DeckSize is the number of cards a complete deck holds: one hero plus the
// forty-card main deck.
const DeckSize = 41

// BuildDeck mints a fresh deck from an ordered list of card fronts sharing a
// single back. The first front is the hero. Card ids are unique for the
// lifetime of the deck; ordinals record the manifest order so the deck can be
// reassembled after cards have moved.
func BuildDeck(back string, fronts []string) []*Card {
	deck := make([]*Card, 0, len(fronts))
	for i, front := range fronts {
		deck = append(deck, NewCard(uuid.NewString(), front, back, i))
	}
	return deck
}

// ShuffleStack permutes a stack of cards in place, uniformly at random.
func ShuffleStack(cards []*Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
}

// SortByOrdinal orders cards by their original deck position, in place.
func SortByOrdinal(cards []*Card) {
	sort.Slice(cards, func(i, j int) bool { return cards[i].Ordinal < cards[j].Ordinal })
}
