package domain

// NumSlots is the fixed number of battlefield slots.
const NumSlots = 10

// Board is the shared battlefield: a fixed set of ordered card stacks.
// The last element of a stack is its top card, the only directly
// interactive one.
type Board struct {
	Slots [NumSlots][]*Card `json:"slots"`
}

// Top returns the top card of the given slot stack, or nil when the slot is
// empty or out of range.
func (b *Board) Top(slot int) *Card {
	if slot < 0 || slot >= NumSlots || len(b.Slots[slot]) == 0 {
		return nil
	}
	return b.Slots[slot][len(b.Slots[slot])-1]
}

// Push appends a card to the given slot stack and updates the card's slot
// reference.
func (b *Board) Push(slot int, c *Card) {
	b.Slots[slot] = append(b.Slots[slot], c)
	c.Slot = slot
}

// RemoveCard removes the card with the given id from the given slot stack and
// returns it, or nil when the stack does not contain it.
func (b *Board) RemoveCard(slot int, cardID string) *Card {
	if slot < 0 || slot >= NumSlots {
		return nil
	}
	stack := b.Slots[slot]
	for i, c := range stack {
		if c.ID == cardID {
			b.Slots[slot] = append(stack[:i], stack[i+1:]...)
			c.Slot = NoSlot
			return c
		}
	}
	return nil
}

// Pop removes and returns the top card of the given slot stack, or nil when
// the slot is empty.
func (b *Board) Pop(slot int) *Card {
	top := b.Top(slot)
	if top == nil {
		return nil
	}
	b.Slots[slot] = b.Slots[slot][:len(b.Slots[slot])-1]
	top.Slot = NoSlot
	return top
}

// NoTurn is the CurrentTurn value while no player holds the turn.
const NoTurn = -1

// GameState is the aggregate root for one match: the canonical state owned by
// the authoritative match handler. Every mutation goes through the action
// processor; clients only ever see full snapshots of it.
type GameState struct {
	Players     []*Player `json:"players"` // list order is turn order
	CurrentTurn int       `json:"current_turn"`
	Board       Board     `json:"board"`
	Deck        []*Card   `json:"deck"` // ordered, undealt
	Active      bool      `json:"active"`
}

// NewGameState constructs an empty aggregate with no turn holder.
func NewGameState() *GameState {
	return &GameState{CurrentTurn: NoTurn, Active: true}
}

// PlayerByID returns the player for the given user id, or nil.
func (s *GameState) PlayerByID(userID string) *Player {
	for _, p := range s.Players {
		if p.UserID == userID {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player holding the turn, or nil.
func (s *GameState) CurrentPlayer() *Player {
	if s.CurrentTurn < 0 || s.CurrentTurn >= len(s.Players) {
		return nil
	}
	return s.Players[s.CurrentTurn]
}

// SetTurn moves the turn flag to the player at the given index, clearing it
// everywhere else. Passing NoTurn clears the flag on every player.
func (s *GameState) SetTurn(index int) {
	for i, p := range s.Players {
		p.CurrentTurn = i == index
	}
	if index < 0 || index >= len(s.Players) {
		index = NoTurn
	}
	s.CurrentTurn = index
}

// NextActiveTurn returns the index of the next non-forfeited player after
// from, wrapping from last to first, or NoTurn when no active player exists.
func (s *GameState) NextActiveTurn(from int) int {
	n := len(s.Players)
	if n == 0 {
		return NoTurn
	}
	for step := 1; step <= n; step++ {
		idx := ((from + step) % n + n) % n
		if !s.Players[idx].Forfeited {
			return idx
		}
	}
	return NoTurn
}

// ActivePlayerCount returns the number of non-forfeited players.
func (s *GameState) ActivePlayerCount() int {
	count := 0
	for _, p := range s.Players {
		if !p.Forfeited {
			count++
		}
	}
	return count
}

// FindHandCard locates a card by id across every player's hand.
func (s *GameState) FindHandCard(cardID string) (*Player, *Card) {
	for _, p := range s.Players {
		for _, c := range p.Hand {
			if c.ID == cardID {
				return p, c
			}
		}
	}
	return nil, nil
}

// AllCards returns every card reachable from the aggregate: the deck, every
// hand, and every slot stack. Each card belongs to exactly one of those
// containers, so the result has no duplicates.
func (s *GameState) AllCards() []*Card {
	var out []*Card
	out = append(out, s.Deck...)
	for _, p := range s.Players {
		out = append(out, p.Hand...)
	}
	for i := range s.Board.Slots {
		out = append(out, s.Board.Slots[i]...)
	}
	return out
}

// Clone returns a deep copy of the aggregate. Snapshots built from a clone
// cannot alias the canonical state.
func (s *GameState) Clone() *GameState {
	out := &GameState{
		CurrentTurn: s.CurrentTurn,
		Active:      s.Active,
	}
	for _, p := range s.Players {
		cp := *p
		cp.Hand = cloneCards(p.Hand)
		out.Players = append(out.Players, &cp)
	}
	out.Deck = cloneCards(s.Deck)
	for i := range s.Board.Slots {
		out.Board.Slots[i] = cloneCards(s.Board.Slots[i])
	}
	return out
}

func cloneCards(cards []*Card) []*Card {
	if cards == nil {
		return nil
	}
	out := make([]*Card, len(cards))
	for i, c := range cards {
		cp := *c
		out[i] = &cp
	}
	return out
}
