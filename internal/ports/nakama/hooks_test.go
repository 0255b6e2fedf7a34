package nakama

import (
	"encoding/base64"
	"testing"
)

func TestExtractUserIDFromToken(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"uid":"user-123","exp":9999999999}`))
	token := header + "." + payload + ".signature"

	uid, err := extractUserIDFromToken(token)
	if err != nil {
		t.Fatalf("extract error: %v", err)
	}
	if uid != "user-123" {
		t.Fatalf("uid = %s, want user-123", uid)
	}
}

func TestExtractUserIDFromTokenRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "not a jwt", token: "plainstring"},
		{name: "bad base64", token: "a.!!!.c"},
		{name: "missing uid", token: "a." + base64.RawURLEncoding.EncodeToString([]byte(`{"exp":1}`)) + ".c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := extractUserIDFromToken(tt.token); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
