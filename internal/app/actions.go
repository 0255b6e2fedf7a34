package app

// ActionKind is the closed set of player-submitted mutations the host
// accepts. Dispatch over it is exhaustive; an unlisted kind is a protocol
// error, not a silent drop.
type ActionKind string

const (
	ActionEndTurn        ActionKind = "end_turn"
	ActionMoveCard       ActionKind = "move_card"
	ActionFlip           ActionKind = "flip"
	ActionRotate         ActionKind = "rotate"
	ActionShuffle        ActionKind = "shuffle"
	ActionDraw           ActionKind = "draw"
	ActionSearch         ActionKind = "search"
	ActionZoom           ActionKind = "zoom" // presentation-only, never mutates state
	ActionUpdateResource ActionKind = "update_resource"
	ActionForfeit        ActionKind = "forfeit"
	ActionDeckReset      ActionKind = "deck_reset"
	ActionGameReset      ActionKind = "game_reset"
)

// ResourceKind names a player resource for ActionUpdateResource.
type ResourceKind string

const (
	ResourceHealth    ResourceKind = "health"
	ResourceLifeforce ResourceKind = "lifeforce"
)

// TargetRef locates a card or stack by descriptor. The host re-resolves every
// descriptor against canonical state; no card data supplied by a client is
// ever trusted or deserialized into the aggregate.
type TargetRef struct {
	IsSlot     bool   `json:"is_slot"`
	SlotIndex  int    `json:"slot_index"`
	IsHandCard bool   `json:"is_hand_card"`
	CardID     string `json:"card_id"`
}

// Action is the single envelope for every client-submitted mutation. Only the
// fields relevant to Kind are read; the rest are ignored.
type Action struct {
	Kind ActionKind `json:"kind"`

	// Actor is the submitting user. It is assigned server-side from the
	// message sender and never read from the payload.
	Actor string `json:"-"`

	// ActionMoveCard: where the card currently is and where it goes.
	Source   TargetRef `json:"source"`
	DestSlot int       `json:"dest_slot"`

	// Context actions (flip, rotate, shuffle, draw, search).
	Target TargetRef `json:"target"`

	// ActionUpdateResource / ActionForfeit.
	TargetPlayer string       `json:"target_player"`
	Resource     ResourceKind `json:"resource"`
	Value        int          `json:"value"`
}
