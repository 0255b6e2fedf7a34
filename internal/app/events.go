package app

import "duelgrid/internal/domain"

// EventKind identifies emitted app events for dispatch to connected peers.
type EventKind string

const (
	// EventStateChanged signals that canonical state mutated and a full
	// snapshot must be rebroadcast to every connection.
	EventStateChanged EventKind = "state_changed"
	// EventSearchResult carries a stack's full contents to its requester only.
	EventSearchResult EventKind = "search_result"
	// EventGameEnded signals the single-survivor-or-none terminal state.
	EventGameEnded EventKind = "game_ended"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// SearchResultPayload exposes one slot stack bottom-to-top. Cards are copies;
// mutating them cannot touch canonical state.
type SearchResultPayload struct {
	SlotIndex int
	Cards     []domain.Card
}

// GameEndedPayload reports the terminal state. SurvivorID is empty when every
// player forfeited.
type GameEndedPayload struct {
	SurvivorID string
}

func stateChanged() []Event {
	return []Event{{Kind: EventStateChanged}}
}
