package app

import (
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func TestInviteTokenRoundTrip(t *testing.T) {
	svc := NewInviteService("test-secret", "duelgrid", time.Hour)

	tokenString, err := svc.CreateToken("match-123", "host-user")
	if err != nil {
		t.Fatalf("create token error: %v", err)
	}

	matchID, err := svc.ParseToken(tokenString)
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if matchID != "match-123" {
		t.Fatalf("match id = %s, want match-123", matchID)
	}
}

func TestInviteTokenCarriesInviter(t *testing.T) {
	secret := "test-secret"
	svc := NewInviteService(secret, "duelgrid", time.Hour)

	tokenString, err := svc.CreateToken("match-123", "host-user")
	if err != nil {
		t.Fatalf("create token error: %v", err)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("decode token error: %v", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("token has no map claims")
	}
	if sub, _ := claims["sub"].(string); sub != "host-user" {
		t.Fatalf("sub = %s, want host-user", sub)
	}
	if iss, _ := claims["iss"].(string); iss != "duelgrid" {
		t.Fatalf("iss = %s, want duelgrid", iss)
	}
}

func TestInviteTokenRejectsWrongSecret(t *testing.T) {
	minter := NewInviteService("secret-a", "duelgrid", time.Hour)
	verifier := NewInviteService("secret-b", "duelgrid", time.Hour)

	tokenString, err := minter.CreateToken("match-123", "host-user")
	if err != nil {
		t.Fatalf("create token error: %v", err)
	}
	if _, err := verifier.ParseToken(tokenString); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestInviteTokenRejectsWrongIssuer(t *testing.T) {
	minter := NewInviteService("test-secret", "someone-else", time.Hour)
	verifier := NewInviteService("test-secret", "duelgrid", time.Hour)

	tokenString, err := minter.CreateToken("match-123", "host-user")
	if err != nil {
		t.Fatalf("create token error: %v", err)
	}
	if _, err := verifier.ParseToken(tokenString); err == nil {
		t.Fatal("expected error for token from another issuer")
	}
}

func TestInviteTokenExpires(t *testing.T) {
	svc := NewInviteService("test-secret", "duelgrid", -time.Minute)

	tokenString, err := svc.CreateToken("match-123", "host-user")
	if err != nil {
		t.Fatalf("create token error: %v", err)
	}
	if _, err := svc.ParseToken(tokenString); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestInviteTokenRequiresCompleteConfig(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		issuer string
	}{
		{name: "missing secret", secret: "", issuer: "duelgrid"},
		{name: "missing issuer", secret: "test-secret", issuer: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewInviteService(tt.secret, tt.issuer, time.Hour)
			if _, err := svc.CreateToken("match-123", "host-user"); err == nil {
				t.Fatal("expected error for incomplete config")
			}
			if _, err := svc.ParseToken("whatever"); err == nil {
				t.Fatal("expected parse error for incomplete config")
			}
		})
	}
}

func TestInviteTokenRequiresMatchAndInviter(t *testing.T) {
	svc := NewInviteService("test-secret", "duelgrid", time.Hour)

	if _, err := svc.CreateToken("", "host-user"); err == nil {
		t.Fatal("expected error for empty match id")
	}
	if _, err := svc.CreateToken("match-123", ""); err == nil {
		t.Fatal("expected error for empty inviter")
	}
}
