package ports

import "context"

// GloryUpdate represents a single glory change for a user.
type GloryUpdate struct {
	UserID   string
	Amount   int64
	Metadata map[string]interface{}
}

// LedgerPort defines the interface for managing the glory currency.
type LedgerPort interface {
	// GetBalance retrieves the current glory balance for a user.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// ApplyUpdates applies multiple glory changes atomically.
	// This is used at the end of a match to award the survivor.
	ApplyUpdates(ctx context.Context, updates []GloryUpdate) error
}
