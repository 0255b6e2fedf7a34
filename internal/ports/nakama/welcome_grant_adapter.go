package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"duelgrid/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const (
	welcomeGrantCollection = "onboarding"
	welcomeGrantKey        = "welcome_glory_v1"
)

// NakamaWelcomeGrantAdapter grants the welcome glory using Nakama storage + wallet updates.
type NakamaWelcomeGrantAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaWelcomeGrantAdapter creates a new welcome grant adapter.
func NewNakamaWelcomeGrantAdapter(nk runtime.NakamaModule) *NakamaWelcomeGrantAdapter {
	return &NakamaWelcomeGrantAdapter{nk: nk}
}

// GrantWelcomeGloryOnce grants the welcome glory and records a marker atomically.
func (a *NakamaWelcomeGrantAdapter) GrantWelcomeGloryOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error) {
	if userID == "" {
		return false, fmt.Errorf("userID is required")
	}
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive")
	}

	marker := map[string]interface{}{
		"amount":     amount,
		"granted_at": time.Now().UTC().Format(time.RFC3339),
	}
	value, err := json.Marshal(marker)
	if err != nil {
		return false, fmt.Errorf("failed to marshal welcome grant marker: %w", err)
	}

	storageWrites := []*runtime.StorageWrite{
		{
			Collection:      welcomeGrantCollection,
			Key:             welcomeGrantKey,
			UserID:          userID,
			Value:           string(value),
			Version:         "*",
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}

	walletUpdates := []*runtime.WalletUpdate{
		{
			UserID:    userID,
			Changeset: map[string]int64{"glory": amount},
			Metadata:  metadata,
		},
	}

	_, _, err = a.nk.MultiUpdate(ctx, nil, storageWrites, nil, walletUpdates, true)
	if err != nil {
		if errors.Is(err, runtime.ErrStorageRejectedVersion) {
			return false, nil
		}
		return false, fmt.Errorf("failed to grant welcome glory: %w", err)
	}

	return true, nil
}

var _ ports.WelcomeGrantPort = (*NakamaWelcomeGrantAdapter)(nil)
