package utils

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "daybook-api")

	token, expiresAt, err := m.GenerateAccessToken()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expiry should be in the future, got %v", expiresAt)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != OperatorSubject {
		t.Fatalf("subject = %q", claims.Subject)
	}
}

func TestJWTRejectsForeignTokens(t *testing.T) {
	issuer := NewJWTManager("secret", time.Hour, "daybook-api")
	other := NewJWTManager("another-secret", time.Hour, "daybook-api")
	expired := NewJWTManager("secret", -time.Minute, "daybook-api")
	wrongIssuer := NewJWTManager("secret", time.Hour, "someone-else")

	for name, m := range map[string]*JWTManager{"wrong key": other, "expired": expired, "wrong issuer": wrongIssuer} {
		token, _, err := m.GenerateAccessToken()
		if err != nil {
			t.Fatalf("%s: generate: %v", name, err)
		}
		if _, err := issuer.ValidateAccessToken(token); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
