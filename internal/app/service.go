package app

import (
	"math/rand"
	"time"

	"duelgrid/internal/domain"
)

// Rules carries the table rules and deck manifest the action processor runs
// under. Values come from config with safe defaults.
type Rules struct {
	StartingHealth    int
	StartingLifeforce int
	LifeforceMax      int
	TurnRegen         int
	HeroSlot          int
	DeckSlot          int
	MaxPlayers        int
	DeckBack          string
	DeckFronts        []string // ordered; index 0 is the hero
}

// Service validates and applies actions against canonical game state. It is
// the only writer of the aggregate; every mutation runs to completion before
// the next one starts, so no locking is needed beyond the caller's message
// serialization.
type Service struct {
	rules Rules
	rng   *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default.
func NewService(rules Rules, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rules: rules, rng: rng}
}

// Rules returns the table rules the service runs under.
func (s *Service) Rules() Rules {
	return s.rules
}

// Join appends a new player with default stats. The first player to join
// receives the turn.
func (s *Service) Join(state *domain.GameState, userID, displayName string) ([]Event, error) {
	if state.PlayerByID(userID) != nil {
		return nil, ErrAlreadyJoined
	}
	if len(state.Players) >= s.rules.MaxPlayers {
		return nil, ErrMatchFull
	}

	player := domain.NewPlayer(userID, displayName, s.rules.StartingHealth, s.rules.StartingLifeforce)
	state.Players = append(state.Players, player)
	if state.CurrentTurn == domain.NoTurn {
		state.SetTurn(len(state.Players) - 1)
	}
	return stateChanged(), nil
}

// Apply validates one action against canonical state and applies it. On error
// the state is untouched; the caller decides how to notify the offender.
func (s *Service) Apply(state *domain.GameState, action Action) ([]Event, error) {
	if !state.Active && action.Kind != ActionGameReset {
		return nil, ErrGameInactive
	}

	switch action.Kind {
	case ActionEndTurn:
		return s.endTurn(state, action)
	case ActionMoveCard:
		return s.moveCard(state, action)
	case ActionFlip, ActionRotate:
		return s.cardToggle(state, action)
	case ActionShuffle:
		return s.shuffle(state, action)
	case ActionDraw:
		return s.draw(state, action)
	case ActionSearch:
		return s.search(state, action)
	case ActionZoom:
		// Zooming is a client-side affordance; tolerate it without touching
		// state or triggering a broadcast.
		return nil, nil
	case ActionUpdateResource:
		return s.updateResource(state, action)
	case ActionForfeit:
		return s.forfeit(state, action)
	case ActionDeckReset:
		return s.deckReset(state)
	case ActionGameReset:
		return s.gameReset(state)
	default:
		return nil, ErrUnknownAction
	}
}

func (s *Service) endTurn(state *domain.GameState, action Action) ([]Event, error) {
	current := state.CurrentPlayer()
	if current == nil {
		return nil, ErrNoCurrentPlayer
	}
	if current.UserID != action.Actor {
		return nil, ErrNotYourTurn
	}

	next := state.NextActiveTurn(state.CurrentTurn)
	state.SetTurn(next)
	if p := state.CurrentPlayer(); p != nil {
		p.AddLifeforce(s.rules.TurnRegen, s.rules.LifeforceMax)
	}
	return stateChanged(), nil
}

func (s *Service) moveCard(state *domain.GameState, action Action) ([]Event, error) {
	if action.DestSlot < 0 || action.DestSlot >= domain.NumSlots {
		return nil, ErrInvalidSlot
	}

	var card *domain.Card
	switch {
	case action.Source.IsHandCard:
		actor := state.PlayerByID(action.Actor)
		if actor == nil {
			return nil, ErrUnknownPlayer
		}
		card = actor.RemoveHandCard(action.Source.CardID)
	case action.Source.IsSlot:
		if action.Source.SlotIndex < 0 || action.Source.SlotIndex >= domain.NumSlots {
			return nil, ErrInvalidSlot
		}
		card = state.Board.RemoveCard(action.Source.SlotIndex, action.Source.CardID)
	default:
		return nil, ErrInvalidTarget
	}
	if card == nil {
		return nil, ErrCardNotFound
	}

	state.Board.Push(action.DestSlot, card)
	return stateChanged(), nil
}

func (s *Service) cardToggle(state *domain.GameState, action Action) ([]Event, error) {
	card, err := s.resolveCard(state, action.Target)
	if err != nil {
		return nil, err
	}
	if action.Kind == ActionFlip {
		card.Flip()
	} else {
		card.Rotate()
	}
	return stateChanged(), nil
}

// resolveCard re-resolves a client-sent target against canonical state. Slot
// targets resolve to the top of the stack regardless of which card the client
// thought was there.
func (s *Service) resolveCard(state *domain.GameState, target TargetRef) (*domain.Card, error) {
	switch {
	case target.IsSlot:
		if target.SlotIndex < 0 || target.SlotIndex >= domain.NumSlots {
			return nil, ErrInvalidSlot
		}
		card := state.Board.Top(target.SlotIndex)
		if card == nil {
			return nil, ErrEmptySlot
		}
		return card, nil
	case target.IsHandCard:
		_, card := state.FindHandCard(target.CardID)
		if card == nil {
			return nil, ErrCardNotFound
		}
		return card, nil
	default:
		return nil, ErrInvalidTarget
	}
}

func (s *Service) shuffle(state *domain.GameState, action Action) ([]Event, error) {
	if !action.Target.IsSlot {
		return nil, ErrInvalidTarget
	}
	if action.Target.SlotIndex < 0 || action.Target.SlotIndex >= domain.NumSlots {
		return nil, ErrInvalidSlot
	}
	domain.ShuffleStack(state.Board.Slots[action.Target.SlotIndex], s.rng)
	return stateChanged(), nil
}

func (s *Service) draw(state *domain.GameState, action Action) ([]Event, error) {
	current := state.CurrentPlayer()
	if current == nil {
		return nil, ErrNoCurrentPlayer
	}

	var card *domain.Card
	switch {
	case action.Target.IsSlot:
		if action.Target.SlotIndex < 0 || action.Target.SlotIndex >= domain.NumSlots {
			return nil, ErrInvalidSlot
		}
		card = state.Board.Pop(action.Target.SlotIndex)
		if card == nil {
			return nil, ErrEmptySlot
		}
	case action.Target.IsHandCard:
		owner, found := state.FindHandCard(action.Target.CardID)
		if found == nil {
			return nil, ErrCardNotFound
		}
		card = owner.RemoveHandCard(found.ID)
	default:
		return nil, ErrInvalidTarget
	}

	current.Hand = append(current.Hand, card)
	return stateChanged(), nil
}

func (s *Service) search(state *domain.GameState, action Action) ([]Event, error) {
	if !action.Target.IsSlot {
		return nil, ErrInvalidTarget
	}
	if action.Target.SlotIndex < 0 || action.Target.SlotIndex >= domain.NumSlots {
		return nil, ErrInvalidSlot
	}

	stack := state.Board.Slots[action.Target.SlotIndex]
	cards := make([]domain.Card, len(stack))
	for i, c := range stack {
		cards[i] = *c
	}
	return []Event{{
		Kind:       EventSearchResult,
		Payload:    SearchResultPayload{SlotIndex: action.Target.SlotIndex, Cards: cards},
		Recipients: []string{action.Actor},
	}}, nil
}

func (s *Service) updateResource(state *domain.GameState, action Action) ([]Event, error) {
	player := state.PlayerByID(action.TargetPlayer)
	if player == nil {
		return nil, ErrUnknownPlayer
	}

	switch action.Resource {
	case ResourceHealth:
		player.SetHealth(action.Value)
	case ResourceLifeforce:
		player.SetLifeforce(action.Value, s.rules.LifeforceMax)
	default:
		return nil, ErrInvalidResource
	}
	return stateChanged(), nil
}

func (s *Service) forfeit(state *domain.GameState, action Action) ([]Event, error) {
	target := action.TargetPlayer
	if target == "" {
		target = action.Actor
	}
	if target != action.Actor {
		return nil, ErrNotYourForfeit
	}
	player := state.PlayerByID(target)
	if player == nil {
		return nil, ErrUnknownPlayer
	}

	player.Forfeited = true

	// A forfeiting turn holder passes the turn along without regen.
	if state.CurrentPlayer() == player {
		state.SetTurn(state.NextActiveTurn(state.CurrentTurn))
	}

	events := stateChanged()
	if state.ActivePlayerCount() <= 1 {
		state.Active = false
		survivor := ""
		for _, p := range state.Players {
			if !p.Forfeited {
				survivor = p.UserID
				break
			}
		}
		events = append(events, Event{
			Kind:    EventGameEnded,
			Payload: GameEndedPayload{SurvivorID: survivor},
		})
	}
	return events, nil
}

// deckReset reassembles the full deck in original order and lays out the
// opening battlefield: the hero on its slot, the forty-card main deck on its
// slot, everything else cleared.
func (s *Service) deckReset(state *domain.GameState) ([]Event, error) {
	cards := state.AllCards()
	if len(cards) < domain.DeckSize {
		return nil, ErrDeckTooSmall
	}

	// Returning a card to the deck restores its neutral presentation.
	for _, c := range cards {
		c.FaceDown = true
		c.Orientation = 0
		c.Slot = domain.NoSlot
	}
	domain.SortByOrdinal(cards)

	for _, p := range state.Players {
		p.Hand = nil
	}
	for i := range state.Board.Slots {
		state.Board.Slots[i] = nil
	}
	state.Deck = cards

	s.placeOpeningLayout(state)
	return stateChanged(), nil
}

// gameReset rebuilds the entire match: fresh deck, default player stats, a
// uniformly random turn holder, and the opening layout.
func (s *Service) gameReset(state *domain.GameState) ([]Event, error) {
	if len(s.rules.DeckFronts) < domain.DeckSize {
		return nil, ErrDeckTooSmall
	}

	for _, p := range state.Players {
		p.Health = s.rules.StartingHealth
		p.Lifeforce = s.rules.StartingLifeforce
		p.Hand = nil
		p.Forfeited = false
		p.CurrentTurn = false
	}
	for i := range state.Board.Slots {
		state.Board.Slots[i] = nil
	}
	state.Deck = domain.BuildDeck(s.rules.DeckBack, s.rules.DeckFronts)
	state.Active = true

	if len(state.Players) > 0 {
		state.SetTurn(s.rng.Intn(len(state.Players)))
	} else {
		state.SetTurn(domain.NoTurn)
	}

	s.placeOpeningLayout(state)
	return stateChanged(), nil
}

// placeOpeningLayout moves deck[0] to the hero slot and the next forty cards
// to the main-deck slot, preserving deck order. Callers guarantee the deck
// holds at least DeckSize cards.
func (s *Service) placeOpeningLayout(state *domain.GameState) {
	state.Board.Push(s.rules.HeroSlot, state.Deck[0])
	for _, c := range state.Deck[1:domain.DeckSize] {
		state.Board.Push(s.rules.DeckSlot, c)
	}
	state.Deck = state.Deck[domain.DeckSize:]
}
