package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a joinable match.
	RpcQuickMatch = "quick_match"

	// RpcCreateInvite is the Nakama RPC id a host calls to mint an invite token for its match.
	RpcCreateInvite = "create_invite"

	// RpcJoinInvite is the Nakama RPC id a guest calls to redeem an invite token for a match id.
	RpcJoinInvite = "join_invite"

	// MatchNameDuelgrid is the authoritative match handler name registered with Nakama.
	MatchNameDuelgrid = "duelgrid_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpPlayerAction int64 = 1
	OpRequestState int64 = 2

	// Server -> Client events
	OpStateSync      int64 = 101
	OpSearchResult   int64 = 102
	OpActionRejected int64 = 103
	OpGameEnded      int64 = 104
)
