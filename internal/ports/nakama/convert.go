package nakama

import (
	"duelgrid/internal/domain"
)

// CardSnapshot is the wire form of a card inside a state snapshot.
type CardSnapshot struct {
	ID          string `json:"id"`
	Front       string `json:"front"`
	Back        string `json:"back"`
	FaceDown    bool   `json:"face_down"`
	Orientation int    `json:"orientation"`
	Slot        int    `json:"slot"`
}

// PlayerSnapshot is the wire form of a player inside a state snapshot.
type PlayerSnapshot struct {
	UserID      string         `json:"user_id"`
	DisplayName string         `json:"display_name"`
	Health      int            `json:"health"`
	Lifeforce   int            `json:"lifeforce"`
	Hand        []CardSnapshot `json:"hand"`
	CurrentTurn bool           `json:"current_turn"`
	Forfeited   bool           `json:"forfeited"`
	IsOwner     bool           `json:"is_owner"`
	Connected   bool           `json:"connected"`
}

// StateSnapshot is the full-state payload rebroadcast after every applied
// action. Clients replace their local view wholesale; nothing is diffed.
type StateSnapshot struct {
	Players     []PlayerSnapshot `json:"players"`
	CurrentTurn int              `json:"current_turn"`
	Slots       [][]CardSnapshot `json:"slots"`
	Deck        []CardSnapshot   `json:"deck"`
	Active      bool             `json:"active"`
	OwnerUserID string           `json:"owner_user_id"`
	Tick        int64            `json:"tick"`
}

// SearchResultSnapshot carries one slot stack, bottom to top, to the player
// who asked for it.
type SearchResultSnapshot struct {
	SlotIndex int            `json:"slot_index"`
	Cards     []CardSnapshot `json:"cards"`
}

// GameEndedSnapshot announces the terminal state. SurvivorID is empty when
// every player forfeited.
type GameEndedSnapshot struct {
	SurvivorID string `json:"survivor_id"`
}

// RejectionNotice tells the offending client why its action was refused. The
// snapshot that follows is unchanged, so the client can also resync from it.
type RejectionNotice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func cardToSnapshot(c *domain.Card) CardSnapshot {
	return CardSnapshot{
		ID:          c.ID,
		Front:       c.Front,
		Back:        c.Back,
		FaceDown:    c.FaceDown,
		Orientation: c.Orientation,
		Slot:        c.Slot,
	}
}

func cardsToSnapshot(cards []*domain.Card) []CardSnapshot {
	out := make([]CardSnapshot, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToSnapshot(c))
	}
	return out
}

// snapshotFromMatch builds the wire snapshot from the authoritative match
// state.
func snapshotFromMatch(ms *MatchState) StateSnapshot {
	snapshot := StateSnapshot{
		CurrentTurn: ms.Game.CurrentTurn,
		Deck:        cardsToSnapshot(ms.Game.Deck),
		Active:      ms.Game.Active,
		OwnerUserID: ms.OwnerUserID,
		Tick:        ms.Tick,
	}
	for _, p := range ms.Game.Players {
		_, connected := ms.Presences[p.UserID]
		snapshot.Players = append(snapshot.Players, PlayerSnapshot{
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Health:      p.Health,
			Lifeforce:   p.Lifeforce,
			Hand:        cardsToSnapshot(p.Hand),
			CurrentTurn: p.CurrentTurn,
			Forfeited:   p.Forfeited,
			IsOwner:     p.UserID == ms.OwnerUserID,
			Connected:   connected,
		})
	}
	snapshot.Slots = make([][]CardSnapshot, domain.NumSlots)
	for i := range ms.Game.Board.Slots {
		snapshot.Slots[i] = cardsToSnapshot(ms.Game.Board.Slots[i])
	}
	return snapshot
}
