package ports

import "context"

// WelcomeGrantPort grants the welcome glory at most once per user.
type WelcomeGrantPort interface {
	// GrantWelcomeGloryOnce attempts to grant a one-time welcome glory amount.
	// Returns granted=false when the grant already happened.
	GrantWelcomeGloryOnce(ctx context.Context, userID string, amount int64, metadata map[string]interface{}) (bool, error)
}
