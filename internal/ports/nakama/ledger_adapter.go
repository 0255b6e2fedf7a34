package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"duelgrid/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// NakamaLedgerAdapter implements ports.LedgerPort using Nakama's wallet system.
type NakamaLedgerAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaLedgerAdapter creates a new ledger adapter.
func NewNakamaLedgerAdapter(nk runtime.NakamaModule) *NakamaLedgerAdapter {
	return &NakamaLedgerAdapter{
		nk: nk,
	}
}

// GetBalance retrieves the current glory balance for a user.
func (a *NakamaLedgerAdapter) GetBalance(ctx context.Context, userID string) (int64, error) {
	account, err := a.nk.AccountGetId(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}

	var wallet map[string]int64
	if err := json.Unmarshal([]byte(account.Wallet), &wallet); err != nil {
		return 0, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}

	return wallet["glory"], nil
}

// ApplyUpdates applies multiple glory changes.
func (a *NakamaLedgerAdapter) ApplyUpdates(ctx context.Context, updates []ports.GloryUpdate) error {
	for _, update := range updates {
		if update.Amount == 0 {
			continue
		}

		changes := map[string]int64{
			"glory": update.Amount,
		}

		_, _, err := a.nk.WalletUpdate(ctx, update.UserID, changes, update.Metadata, true)
		if err != nil {
			return fmt.Errorf("failed to update wallet for user %s: %w", update.UserID, err)
		}
	}
	return nil
}

var _ ports.LedgerPort = (*NakamaLedgerAdapter)(nil)
