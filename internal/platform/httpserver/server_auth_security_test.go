package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"noteboard/contexts/identity-access/account-service/adapters/token"
	"noteboard/contexts/identity-access/account-service/domain/entities"
)

func TestRegisterCreatesUserWithDefaultRole(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "secret123",
	})

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	if !env.Success || env.Message != "user registered successfully" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	var user struct {
		ID   int64  `json:"id"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Role != "user" {
		t.Fatalf("expected default role user, got %q", user.Role)
	}
	if user.ID != 3 {
		t.Fatalf("expected id 3 after the two seed users, got %d", user.ID)
	}
	if strings.Contains(strings.ToLower(rr.Body.String()), "password") {
		t.Fatalf("response leaks credential material: %s", rr.Body.String())
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Imposter",
		"email":    "admin@example.com",
		"password": "secret123",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
		"name":  "No Password",
		"email": "nopass@example.com",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Bob",
		"email":    "bob@example.com",
		"password": "secret123",
		"role":     "superuser",
	})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	server := newTestServer()

	unknown := doJSON(t, server, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	wrongPassword := doJSON(t, server, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "user@example.com",
		"password": "not-the-password",
	})

	if unknown.Code != http.StatusUnauthorized || wrongPassword.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", unknown.Code, wrongPassword.Code)
	}
	if decodeEnvelope(t, unknown).Message != decodeEnvelope(t, wrongPassword).Message {
		t.Fatalf("credential failures must share one message: %s vs %s",
			unknown.Body.String(), wrongPassword.Body.String())
	}
}

func TestMeRequiresToken(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodGet, "/auth/me", "", nil)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
	if decodeEnvelope(t, rr).Message != "token not provided" {
		t.Fatalf("unexpected message: %s", rr.Body.String())
	}
}

func TestMeReturnsCallerProfile(t *testing.T) {
	server := newTestServer()
	tok := loginAs(t, server, "user@example.com", "user123")

	rr := doJSON(t, server, http.MethodGet, "/auth/me", tok, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var user struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.ID != 2 || user.Email != "user@example.com" || user.Role != "user" {
		t.Fatalf("unexpected profile: %+v", user)
	}
}

func TestListUsersForbiddenForRegularUser(t *testing.T) {
	server := newTestServer()
	tok := loginAs(t, server, "user@example.com", "user123")

	rr := doJSON(t, server, http.MethodGet, "/auth/users", tok, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListUsersAllowsAdmin(t *testing.T) {
	server := newTestServer()
	tok := loginAs(t, server, "admin@example.com", "admin123")

	rr := doJSON(t, server, http.MethodGet, "/auth/users", tok, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var users []struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &users); err != nil {
		t.Fatalf("decode users: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected the two seed users, got %d", len(users))
	}
	if strings.Contains(strings.ToLower(rr.Body.String()), "password") {
		t.Fatalf("listing leaks credential material: %s", rr.Body.String())
	}
}

type frozenClock struct{ at time.Time }

func (c frozenClock) Now() time.Time { return c.at }

func TestExpiredAndForgedTokensGetDistinctMessages(t *testing.T) {
	server := newTestServer()

	issuer := token.JWTService{
		Secret: []byte(testSecret),
		TTL:    time.Hour,
		Clock:  frozenClock{at: time.Now().Add(-48 * time.Hour)},
	}
	staleToken, err := issuer.Issue(entities.User{ID: 2, Email: "user@example.com", Role: entities.RoleUser})
	if err != nil {
		t.Fatalf("issue stale token: %v", err)
	}

	expired := doJSON(t, server, http.MethodGet, "/auth/me", staleToken, nil)
	forged := doJSON(t, server, http.MethodGet, "/auth/me", "not-a-jwt", nil)

	if expired.Code != http.StatusUnauthorized || forged.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", expired.Code, forged.Code)
	}
	expiredMsg := decodeEnvelope(t, expired).Message
	forgedMsg := decodeEnvelope(t, forged).Message
	if expiredMsg == forgedMsg {
		t.Fatalf("expired and forged tokens must be told apart, both said %q", expiredMsg)
	}
	if expiredMsg != "token has expired" || forgedMsg != "invalid token" {
		t.Fatalf("unexpected messages: expired=%q forged=%q", expiredMsg, forgedMsg)
	}
}
