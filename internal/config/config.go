package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// DeckCard is one manifest entry; index order defines the card's place in a
// freshly reset deck, index 0 being the hero.
type DeckCard struct {
	Front string `json:"front"`
}

// DeckManifest names the artwork for one full deck.
type DeckManifest struct {
	Back  string     `json:"back"`
	Cards []DeckCard `json:"cards"`
}

type GameConfig struct {
	StartingHealth    int `json:"starting_health"`
	StartingLifeforce int `json:"starting_lifeforce"`
	LifeforceMax      int `json:"lifeforce_max"`
	// TurnLifeforceRegen is granted to a player when the turn passes to them.
	TurnLifeforceRegen int `json:"turn_lifeforce_regen"`
	HeroSlot           int `json:"hero_slot"`
	DeckSlot           int `json:"deck_slot"`
	MaxPlayers         int `json:"max_players"`
	// SurvivorGloryAward is credited to the last standing player.
	SurvivorGloryAward int64        `json:"survivor_glory_award"`
	InviteTTLMinutes   int          `json:"invite_ttl_minutes"`
	Deck               DeckManifest `json:"deck"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration, falling back to
// defaults when no config file was loaded.
func GetGameConfig() *GameConfig {
	if cfg == nil {
		return defaultConfig()
	}
	return cfg
}

const defaultDeckCards = 41

func defaultConfig() *GameConfig {
	manifest := DeckManifest{Back: "cards/back.png"}
	for i := 0; i < defaultDeckCards; i++ {
		manifest.Cards = append(manifest.Cards, DeckCard{Front: fmt.Sprintf("cards/%03d.png", i)})
	}
	return &GameConfig{
		StartingHealth:     40,
		StartingLifeforce:  10,
		LifeforceMax:       10,
		TurnLifeforceRegen: 5,
		HeroSlot:           0,
		DeckSlot:           9,
		MaxPlayers:         4,
		SurvivorGloryAward: 100,
		InviteTTLMinutes:   60,
		Deck:               manifest,
	}
}

// DeckFronts flattens the manifest into the ordered front list the action
// processor consumes.
func (c *GameConfig) DeckFronts() []string {
	fronts := make([]string, len(c.Deck.Cards))
	for i, card := range c.Deck.Cards {
		fronts[i] = card.Front
	}
	return fronts
}
