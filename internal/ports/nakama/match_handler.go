package nakama

import (
	"context"
	"database/sql"
	"encoding/json"

	"duelgrid/internal/app"
	"duelgrid/internal/config"
	"duelgrid/internal/domain"
	"duelgrid/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// MatchLabel is advertised for quick-match queries.
type MatchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}

const (
	PhaseLobby   = "lobby"
	PhasePlaying = "playing"
	PhaseEnded   = "ended"
)

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Game        *domain.GameState           // Canonical game state, owned by this handler
	Presences   map[string]runtime.Presence // Map UserId -> Presence for targeted messaging
	OwnerUserID string                      // First joiner; gates destructive actions
	Tick        int64
	Svc         *app.Service     // Action processor
	Ledger      ports.LedgerPort // Interface to Nakama wallet for glory awards
	GloryAward  int64            // Credited to the survivor when the game ends
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}
	cfg := config.GetGameConfig()

	rules := app.Rules{
		StartingHealth:    cfg.StartingHealth,
		StartingLifeforce: cfg.StartingLifeforce,
		LifeforceMax:      cfg.LifeforceMax,
		TurnRegen:         cfg.TurnLifeforceRegen,
		HeroSlot:          cfg.HeroSlot,
		DeckSlot:          cfg.DeckSlot,
		MaxPlayers:        cfg.MaxPlayers,
		DeckBack:          cfg.Deck.Back,
		DeckFronts:        cfg.DeckFronts(),
	}

	state := &MatchState{
		Game:       domain.NewGameState(),
		Presences:  make(map[string]runtime.Presence),
		Svc:        app.NewService(rules, nil),
		Ledger:     NewNakamaLedgerAdapter(nk),
		GloryAward: cfg.SurvivorGloryAward,
	}
	state.Game.Deck = domain.BuildDeck(rules.DeckBack, rules.DeckFronts)

	labelBytes, err := json.Marshal(MatchLabel{Open: rules.MaxPlayers, Game: "duelgrid", Phase: PhaseLobby})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 10
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Reconnects are always welcome; their seat at the table survives the
	// dropped connection.
	if matchState.Game.PlayerByID(presence.GetUserId()) != nil {
		return state, true, ""
	}

	if len(matchState.Game.Players) >= matchState.Svc.Rules().MaxPlayers {
		return state, false, "Match full"
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if matchState.Game.PlayerByID(p.GetUserId()) != nil {
			logger.Info("MatchJoin: User %s reconnected.", p.GetUserId())
			continue
		}

		displayName := p.GetUsername()
		if displayName == "" {
			displayName = p.GetUserId()
		}
		if _, err := matchState.Svc.Join(matchState.Game, p.GetUserId(), displayName); err != nil {
			logger.Warn("MatchJoin: User %s could not join: %v", p.GetUserId(), err)
			continue
		}

		if matchState.OwnerUserID == "" {
			matchState.OwnerUserID = p.GetUserId()
			logger.Debug("MatchJoin: Owner set to %s.", p.GetUserId())
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger, nil)

	return matchState
}

// MatchLeave is called when one or more players disconnect. Their seat and
// cards stay in the game so they can reconnect; only the presence goes away.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	ownerLeft := false
	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		if p.GetUserId() == matchState.OwnerUserID {
			ownerLeft = true
		}
		logger.Debug("MatchLeave: User %s disconnected.", p.GetUserId())
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating empty match.")
		return nil
	}

	if ownerLeft {
		// Promote the earliest-joined connected player.
		for _, player := range matchState.Game.Players {
			if _, connected := matchState.Presences[player.UserID]; connected {
				matchState.OwnerUserID = player.UserID
				logger.Debug("MatchLeave: Owner reassigned to %s.", player.UserID)
				break
			}
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger, nil)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpPlayerAction:
			mh.handlePlayerAction(ctx, matchState, dispatcher, logger, msg)
		case OpRequestState:
			mh.broadcastSnapshot(matchState, dispatcher, logger, []string{msg.GetUserId()})
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	return matchState
}

// ownerOnly lists the actions reserved for the match owner. They rebuild the
// whole table, so a guest must not be able to fire them mid-game.
func ownerOnly(kind app.ActionKind) bool {
	return kind == app.ActionDeckReset || kind == app.ActionGameReset
}

func (mh *matchHandler) handlePlayerAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	var action app.Action
	if err := json.Unmarshal(msg.GetData(), &action); err != nil {
		logger.Warn("handlePlayerAction: Invalid action payload from %s: %v", senderID, err)
		mh.sendRejection(state, dispatcher, logger, senderID, "", "malformed action payload")
		return
	}
	// The sender is who Nakama says it is, never who the payload claims.
	action.Actor = senderID

	if ownerOnly(action.Kind) && senderID != state.OwnerUserID {
		logger.Warn("handlePlayerAction: User %s attempted owner action %s.", senderID, action.Kind)
		mh.sendRejection(state, dispatcher, logger, senderID, string(action.Kind), "only the match owner may do that")
		return
	}

	events, err := state.Svc.Apply(state.Game, action)
	if err != nil {
		logger.Warn("handlePlayerAction: User %s action %s rejected: %v", senderID, action.Kind, err)
		mh.sendRejection(state, dispatcher, logger, senderID, string(action.Kind), err.Error())
		return
	}

	for _, ev := range events {
		mh.dispatchEvent(ctx, state, dispatcher, logger, ev)
	}
}

// dispatchEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) dispatchEvent(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	switch ev.Kind {
	case app.EventStateChanged:
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastSnapshot(state, dispatcher, logger, ev.Recipients)

	case app.EventSearchResult:
		p := ev.Payload.(app.SearchResultPayload)
		result := SearchResultSnapshot{SlotIndex: p.SlotIndex}
		for _, c := range p.Cards {
			card := c
			result.Cards = append(result.Cards, cardToSnapshot(&card))
		}
		bytes, err := json.Marshal(result)
		if err != nil {
			logger.Error("dispatchEvent: Failed to marshal search result: %v", err)
			return
		}
		recipients := mh.resolvePresences(state, ev.Recipients)
		if len(recipients) == 0 {
			return
		}
		dispatcher.BroadcastMessage(OpSearchResult, bytes, recipients, nil, true)

	case app.EventGameEnded:
		p := ev.Payload.(app.GameEndedPayload)
		mh.awardSurvivor(ctx, state, logger, p.SurvivorID)

		bytes, err := json.Marshal(GameEndedSnapshot{SurvivorID: p.SurvivorID})
		if err != nil {
			logger.Error("dispatchEvent: Failed to marshal game ended: %v", err)
			return
		}
		dispatcher.BroadcastMessage(OpGameEnded, bytes, nil, nil, true)
		mh.updateLabel(state, dispatcher, logger)

	default:
		logger.Warn("dispatchEvent: Unknown event kind: %v", ev.Kind)
	}
}

func (mh *matchHandler) awardSurvivor(ctx context.Context, state *MatchState, logger runtime.Logger, survivorID string) {
	if state.Ledger == nil || survivorID == "" || state.GloryAward <= 0 {
		return
	}

	updates := []ports.GloryUpdate{{
		UserID: survivorID,
		Amount: state.GloryAward,
		Metadata: map[string]interface{}{
			"match_id": ctx.Value(runtime.RUNTIME_CTX_MATCH_ID),
			"reason":   "survivor_award",
		},
	}}
	if err := state.Ledger.ApplyUpdates(ctx, updates); err != nil {
		logger.Error("awardSurvivor: Failed to credit %s: %v", survivorID, err)
	}
}

// broadcastSnapshot sends the full canonical state. With nil userIDs it goes
// to every connection; otherwise only to the listed users.
func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userIDs []string) {
	snapshot := snapshotFromMatch(state)
	bytes, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("broadcastSnapshot: Failed to marshal snapshot: %v", err)
		return
	}

	var recipients []runtime.Presence
	if len(userIDs) > 0 {
		recipients = mh.resolvePresences(state, userIDs)
		if len(recipients) == 0 {
			return
		}
	}
	dispatcher.BroadcastMessage(OpStateSync, bytes, recipients, nil, true)
}

// sendRejection notifies the offending user why its action was refused.
func (mh *matchHandler) sendRejection(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID, kind, message string) {
	bytes, err := json.Marshal(RejectionNotice{Kind: kind, Message: message})
	if err != nil {
		logger.Error("sendRejection: Failed to marshal notice: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("sendRejection: Cannot notify %s: presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpActionRejected, bytes, []runtime.Presence{presence}, nil, true)
}

func (mh *matchHandler) resolvePresences(state *MatchState, userIDs []string) []runtime.Presence {
	var out []runtime.Presence
	for _, uid := range userIDs {
		if p, ok := state.Presences[uid]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	open := state.Svc.Rules().MaxPlayers - len(state.Game.Players)
	if open < 0 {
		open = 0
	}

	phase := PhaseLobby
	switch {
	case !state.Game.Active:
		phase = PhaseEnded
	case open == 0:
		phase = PhasePlaying
	}

	labelBytes, err := json.Marshal(MatchLabel{Open: open, Game: "duelgrid", Phase: phase})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}
