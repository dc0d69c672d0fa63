package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestTokenSignVerify(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Minute)
	userID := uuid.New()

	token, err := manager.Sign(userID, "staff")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	gotID, role, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if gotID != userID {
		t.Errorf("user ID = %s, want %s", gotID, userID)
	}
	if role != "staff" {
		t.Errorf("role = %q, want staff", role)
	}
}

func TestTokenVerify_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Minute).Sign(uuid.New(), "customer")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	_, _, err = NewTokenManager("secret-b", time.Minute).Verify(token)
	if err != ErrTokenInvalid {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenVerify_Expired(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)
	token, err := manager.Sign(uuid.New(), "customer")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	_, _, err = manager.Verify(token)
	if err != ErrTokenExpired {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestTokenVerify_Garbage(t *testing.T) {
	_, _, err := NewTokenManager("test-secret", time.Minute).Verify("not-a-jwt")
	if err != ErrTokenInvalid {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestRefreshTokenHash(t *testing.T) {
	token, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}
	other, err := NewRefreshToken()
	if err != nil {
		t.Fatalf("NewRefreshToken failed: %v", err)
	}

	if token == other {
		t.Error("expected unique refresh tokens")
	}
	if HashRefreshToken(token) == HashRefreshToken(other) {
		t.Error("expected distinct hashes")
	}
	if HashRefreshToken(token) != HashRefreshToken(token) {
		t.Error("hash must be deterministic")
	}
	if HashRefreshToken(token) == token {
		t.Error("hash must differ from the plaintext token")
	}
}
