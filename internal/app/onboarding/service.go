package onboarding

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"duelgrid/internal/ports"
)

const (
	defaultWelcomeGlory = 500
)

// Result captures non-fatal onboarding outcomes.
type Result struct {
	// ProfileUpdateErr is set when the profile update failed but onboarding continued.
	ProfileUpdateErr error
	// WelcomeGloryGranted is false when the user already received the grant.
	WelcomeGloryGranted bool
}

// Service handles post-auth onboarding for new users.
type Service struct {
	accounts ports.AccountPort
	grants   ports.WelcomeGrantPort
	rng      *rand.Rand
}

// NewService constructs an onboarding service with required ports.
// accounts/grants must be non-nil; rng may be nil to use a time-seeded default.
func NewService(accounts ports.AccountPort, grants ports.WelcomeGrantPort, rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		accounts: accounts,
		grants:   grants,
		rng:      rng,
	}
}

// OnboardNewUser initializes profile and glory for a newly created account.
// Returns a Result with any non-fatal issues and an error if the welcome
// glory cannot be granted.
func (s *Service) OnboardNewUser(ctx context.Context, userID string) (Result, error) {
	if s.accounts == nil || s.grants == nil {
		return Result{}, fmt.Errorf("onboarding service not configured")
	}

	result := Result{}
	displayName := s.generateFriendlyName()
	if err := s.accounts.UpdateProfile(ctx, userID, displayName, displayName); err != nil {
		// Profile updates are best-effort; the glory grant is more important.
		result.ProfileUpdateErr = err
	}

	metadata := map[string]interface{}{
		"reason": "welcome_glory",
	}
	granted, err := s.grants.GrantWelcomeGloryOnce(ctx, userID, defaultWelcomeGlory, metadata)
	if err != nil {
		return result, fmt.Errorf("failed to grant welcome glory: %w", err)
	}
	result.WelcomeGloryGranted = granted

	return result, nil
}

func (s *Service) generateFriendlyName() string {
	adjectives := []string{"Arcane", "Gilded", "Fell", "Radiant", "Silent", "Stormbound", "Ashen", "Verdant", "Iron", "Dusk"}
	nouns := []string{"Summoner", "Warden", "Herald", "Duelist", "Seer", "Knight", "Ranger", "Magus", "Keeper", "Reaver"}

	adj := adjectives[s.rng.Intn(len(adjectives))]
	noun := nouns[s.rng.Intn(len(nouns))]
	num := s.rng.Intn(9000) + 1000

	return fmt.Sprintf("%s%s%d", adj, noun, num)
}
