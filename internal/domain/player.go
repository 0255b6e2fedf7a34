package domain

// Player holds the authoritative state for one participant in a match.
type Player struct {
	UserID      string  `json:"user_id"`
	DisplayName string  `json:"display_name"`
	Health      int     `json:"health"`
	Lifeforce   int     `json:"lifeforce"`
	Hand        []*Card `json:"hand"` // insertion order; the order is visually meaningful
	CurrentTurn bool    `json:"current_turn"`
	Forfeited   bool    `json:"forfeited"`
}

// NewPlayer constructs a player with the given starting resources, an empty
// hand, and cleared turn/forfeit flags.
func NewPlayer(userID, displayName string, health, lifeforce int) *Player {
	return &Player{
		UserID:      userID,
		DisplayName: displayName,
		Health:      health,
		Lifeforce:   lifeforce,
	}
}

// SetHealth sets health to the requested absolute value, clamped to a floor
// of zero. There is no upper bound.
func (p *Player) SetHealth(value int) {
	if value < 0 {
		value = 0
	}
	p.Health = value
}

// SetLifeforce sets lifeforce to the requested absolute value, clamped to
// [0, max].
func (p *Player) SetLifeforce(value, max int) {
	if value < 0 {
		value = 0
	}
	if value > max {
		value = max
	}
	p.Lifeforce = value
}

// AddLifeforce adjusts lifeforce by delta, clamped to [0, max].
func (p *Player) AddLifeforce(delta, max int) {
	p.SetLifeforce(p.Lifeforce+delta, max)
}

// RemoveHandCard removes the card with the given id from the hand and returns
// it, or nil when the hand does not contain it.
func (p *Player) RemoveHandCard(cardID string) *Card {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c
		}
	}
	return nil
}
