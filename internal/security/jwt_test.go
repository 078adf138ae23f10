package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"cvtrack/internal/common"
)

func TestJWTProvider_RoundTrip(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	accountID := common.NewUUID()

	token, expiresAt, err := provider.Generate(accountID, "active", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expected expiry in the future")
	}

	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.AccountID != accountID.String() {
		t.Errorf("account id = %q, want %q", claims.AccountID, accountID)
	}
	if claims.AccountStatus != "active" {
		t.Errorf("account status = %q, want active", claims.AccountStatus)
	}
}

func TestJWTProvider_WrongSecret(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	token, _, err := provider.Generate(common.NewUUID(), "active", time.Hour)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	other := NewJWTProvider("another-secret")
	if _, err := other.Parse(token); err == nil {
		t.Error("expected verification to fail with a different secret")
	}
}

func TestJWTProvider_Expired(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	token, _, err := provider.Generate(common.NewUUID(), "active", -time.Minute)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := provider.Parse(token); err == nil {
		t.Error("expected an expired token to be rejected")
	}
}

func TestJWTProvider_SubjectFallback(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	accountID := common.NewUUID()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   accountID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := raw.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	claims, err := provider.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.AccountID != accountID.String() {
		t.Errorf("account id = %q, want subject fallback %q", claims.AccountID, accountID)
	}
}

func TestJWTProvider_RejectsUnsignedToken(t *testing.T) {
	provider := NewJWTProvider("test-secret")
	raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject: common.NewUUID().String(),
	})
	token, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	if _, err := provider.Parse(token); err == nil {
		t.Error("expected a token signed with alg=none to be rejected")
	}
}
