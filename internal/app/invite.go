package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// InviteService mints and validates signed match-invite tokens. A token is
// the opaque join handle a host shares out of band; redeeming it yields the
// match id without the guest having to know anything else about the session.
type InviteService struct {
	secret string
	issuer string
	ttl    time.Duration
}

// NewInviteService constructs an InviteService. ttl bounds how long an invite
// stays redeemable.
func NewInviteService(secret, issuer string, ttl time.Duration) *InviteService {
	return &InviteService{secret: secret, issuer: issuer, ttl: ttl}
}

// CreateToken signs an invite for the given match on behalf of the inviting
// user.
func (s *InviteService) CreateToken(matchID, inviterID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("invite service is nil")
	}
	if matchID == "" {
		return "", fmt.Errorf("match id is required")
	}
	if inviterID == "" {
		return "", fmt.Errorf("inviter is required")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("invite config is incomplete")
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": inviterID,
		"exp": time.Now().Add(s.ttl).Unix(),
		"mid": matchID,
		"jti": fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// ParseToken validates an invite token and returns the match id it grants
// access to.
func (s *InviteService) ParseToken(tokenString string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("invite service is nil")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("invite config is incomplete")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid invite token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invite token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invite token has no claims")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return "", fmt.Errorf("invite token issuer mismatch")
	}
	matchID, _ := claims["mid"].(string)
	if matchID == "" {
		return "", fmt.Errorf("invite token missing match id")
	}
	return matchID, nil
}
