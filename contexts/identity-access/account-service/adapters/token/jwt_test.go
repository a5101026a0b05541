package token

import (
	"errors"
	"testing"
	"time"

	"noteboard/contexts/identity-access/account-service/domain/entities"
	domainerrors "noteboard/contexts/identity-access/account-service/domain/errors"
)

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	service := JWTService{Secret: []byte("test-secret"), TTL: time.Hour}

	raw, err := service.Issue(entities.User{ID: 7, Email: "a@x.com", Role: entities.RoleAdmin})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	identity, err := service.Verify(raw)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if identity.UserID != 7 || identity.Email != "a@x.com" || identity.Role != entities.RoleAdmin {
		t.Fatalf("unexpected identity %+v", identity)
	}
}

func TestVerifyDistinguishesExpiredFromForged(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := JWTService{Secret: []byte("test-secret"), TTL: time.Minute, Clock: fixedClock{at: base}}

	raw, err := issuer.Issue(entities.User{ID: 1, Email: "a@x.com", Role: entities.RoleUser})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	later := JWTService{Secret: []byte("test-secret"), TTL: time.Minute, Clock: fixedClock{at: base.Add(2 * time.Minute)}}
	if _, err := later.Verify(raw); !errors.Is(err, domainerrors.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}

	if _, err := issuer.Verify("not-a-token"); !errors.Is(err, domainerrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	otherKey := JWTService{Secret: []byte("different"), TTL: time.Minute, Clock: fixedClock{at: base}}
	if _, err := otherKey.Verify(raw); !errors.Is(err, domainerrors.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong key, got %v", err)
	}
}
