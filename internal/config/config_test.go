package config

import "testing"

func TestDefaultConfigIsComplete(t *testing.T) {
	cfg := defaultConfig()

	if cfg.StartingHealth != 40 || cfg.StartingLifeforce != 10 || cfg.LifeforceMax != 10 {
		t.Fatalf("defaults wrong: %+v", cfg)
	}
	if cfg.TurnLifeforceRegen != 5 {
		t.Fatalf("turn regen = %d, want 5", cfg.TurnLifeforceRegen)
	}
	if len(cfg.Deck.Cards) != defaultDeckCards {
		t.Fatalf("manifest size = %d, want %d", len(cfg.Deck.Cards), defaultDeckCards)
	}
	if cfg.HeroSlot == cfg.DeckSlot {
		t.Fatal("hero slot and deck slot must differ")
	}
}

func TestDeckFrontsPreservesManifestOrder(t *testing.T) {
	cfg := &GameConfig{
		Deck: DeckManifest{
			Back:  "back.png",
			Cards: []DeckCard{{Front: "a.png"}, {Front: "b.png"}, {Front: "c.png"}},
		},
	}

	fronts := cfg.DeckFronts()
	want := []string{"a.png", "b.png", "c.png"}
	if len(fronts) != len(want) {
		t.Fatalf("fronts = %v, want %v", fronts, want)
	}
	for i := range want {
		if fronts[i] != want[i] {
			t.Fatalf("fronts[%d] = %s, want %s", i, fronts[i], want[i])
		}
	}
}
