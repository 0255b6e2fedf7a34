package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"duelgrid/internal/app"
	"duelgrid/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

const inviteIssuer = "duelgrid"

// CreateInviteRequest is the payload a host sends to mint an invite.
type CreateInviteRequest struct {
	MatchID string `json:"match_id"`
}

// CreateInviteResponse carries the opaque invite token back to the host.
type CreateInviteResponse struct {
	Token string `json:"token"`
}

// JoinInviteRequest is the payload a guest sends to redeem an invite.
type JoinInviteRequest struct {
	Token string `json:"token"`
}

// JoinInviteResponse resolves an invite to the match it grants access to.
type JoinInviteResponse struct {
	MatchID string `json:"match_id"`
}

// inviteServiceFromCtx builds the invite service from the runtime
// environment. The signing secret comes from the Nakama env block.
func inviteServiceFromCtx(ctx context.Context) (*app.InviteService, error) {
	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	secret := env["duelgrid_invite_secret"]
	if secret == "" {
		return nil, fmt.Errorf("duelgrid_invite_secret is not configured")
	}

	ttl := time.Duration(config.GetGameConfig().InviteTTLMinutes) * time.Minute
	return app.NewInviteService(secret, inviteIssuer, ttl), nil
}

func rpcCreateInvite(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("rpc requires an authenticated user", 16) // UNAUTHENTICATED
	}

	var req CreateInviteRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3) // INVALID_ARGUMENT
	}
	if req.MatchID == "" {
		return "", runtime.NewError("match_id is required", 3)
	}

	svc, err := inviteServiceFromCtx(ctx)
	if err != nil {
		logger.Error("rpcCreateInvite: %v", err)
		return "", runtime.NewError("invites are not configured", 13) // INTERNAL
	}

	token, err := svc.CreateToken(req.MatchID, userID)
	if err != nil {
		logger.Error("rpcCreateInvite: Failed to mint token for %s: %v", userID, err)
		return "", runtime.NewError("failed to create invite", 13)
	}

	b, _ := json.Marshal(CreateInviteResponse{Token: token})
	return string(b), nil
}

func rpcJoinInvite(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("rpc requires an authenticated user", 16)
	}

	var req JoinInviteRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return "", runtime.NewError("invalid payload", 3)
	}
	if req.Token == "" {
		return "", runtime.NewError("token is required", 3)
	}

	svc, err := inviteServiceFromCtx(ctx)
	if err != nil {
		logger.Error("rpcJoinInvite: %v", err)
		return "", runtime.NewError("invites are not configured", 13)
	}

	matchID, err := svc.ParseToken(req.Token)
	if err != nil {
		logger.Warn("rpcJoinInvite: User %s presented a bad invite: %v", userID, err)
		return "", runtime.NewError("invite is invalid or expired", 7) // PERMISSION_DENIED
	}

	b, _ := json.Marshal(JoinInviteResponse{MatchID: matchID})
	return string(b), nil
}
