package domain

// NoSlot marks a card that is not on the battlefield (in a hand or the deck).
const NoSlot = -1

// Card is a single tabletop card tracked by the authoritative state.
// Identity is the ID alone; two cards are the same card iff their IDs match.
type Card struct {
	ID          string `json:"id"`
	Front       string `json:"front"`
	Back        string `json:"back"`
	FaceDown    bool   `json:"face_down"`
	Orientation int    `json:"orientation"` // degrees clockwise: 0, 90, 180, 270
	Slot        int    `json:"slot"`        // battlefield slot index, NoSlot otherwise
	Ordinal     int    `json:"ordinal"`     // position in the original deck order
}

// NewCard constructs a card in its initial presentation: face down, upright,
// not on the battlefield.
func NewCard(id, front, back string, ordinal int) *Card {
	return &Card{
		ID:       id,
		Front:    front,
		Back:     back,
		FaceDown: true,
		Slot:     NoSlot,
		Ordinal:  ordinal,
	}
}

// Flip toggles the card between face up and face down.
func (c *Card) Flip() {
	c.FaceDown = !c.FaceDown
}

// Rotate turns the card a quarter turn clockwise.
func (c *Card) Rotate() {
	c.Orientation = (c.Orientation + 90) % 360
}
