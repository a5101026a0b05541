package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
)

type postBody struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	UserID   int64  `json:"userId"`
	AuthorID int64  `json:"authorId"`
}

func TestListPostsIsPublic(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodGet, "/posts", "", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var posts []postBody
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &posts); err != nil {
		t.Fatalf("decode posts: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected the two seed posts, got %d", len(posts))
	}
}

func TestGetPostUnknownIDReturnsNotFound(t *testing.T) {
	server := newTestServer()

	for _, path := range []string{"/posts/999", "/posts/abc"} {
		rr := doJSON(t, server, http.MethodGet, path, "", nil)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("GET %s: expected 404, got %d body=%s", path, rr.Code, rr.Body.String())
		}
	}
}

func TestCreatePostRequiresToken(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/posts", "", map[string]any{
		"title":   "anon",
		"content": "anon",
		"userId":  1,
	})

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreatePostForbiddenForGuest(t *testing.T) {
	server := newTestServer()
	rr := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Visitor",
		"email":    "visitor@example.com",
		"password": "secret123",
		"role":     "guest",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register guest: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	tok := loginAs(t, server, "visitor@example.com", "secret123")

	rr = doJSON(t, server, http.MethodPost, "/posts", tok, map[string]any{
		"title":   "guest note",
		"content": "should be rejected",
		"userId":  1,
	})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreatePostValidatesFields(t *testing.T) {
	server := newTestServer()
	tok := loginAs(t, server, "user@example.com", "user123")

	rr := doJSON(t, server, http.MethodPost, "/posts", tok, map[string]any{
		"title":   "no tag",
		"content": "missing userId",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCreatePostStampsAuthorFromToken(t *testing.T) {
	server := newTestServer()
	tok := loginAs(t, server, "user@example.com", "user123")

	rr := doJSON(t, server, http.MethodPost, "/posts", tok, map[string]any{
		"title":   "mine",
		"content": "written by user 2",
		"userId":  42,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	var created postBody
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &created); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if created.AuthorID != 2 {
		t.Fatalf("author must come from the token, got %d", created.AuthorID)
	}
	if created.UserID != 42 {
		t.Fatalf("userId tag must pass through untouched, got %d", created.UserID)
	}
}

func TestOwnershipGateOnUpdateAndAdminOverride(t *testing.T) {
	server := newTestServer()

	rr := doJSON(t, server, http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Carol",
		"email":    "carol@example.com",
		"password": "secret123",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	carol := loginAs(t, server, "carol@example.com", "secret123")

	rr = doJSON(t, server, http.MethodPost, "/posts", carol, map[string]any{
		"title":   "carol's note",
		"content": "original",
		"userId":  7,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var created postBody
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &created); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if created.AuthorID != 3 {
		t.Fatalf("expected author 3 for the freshly registered user, got %d", created.AuthorID)
	}

	other := loginAs(t, server, "user@example.com", "user123")
	rr = doJSON(t, server, http.MethodPut, "/posts/3", other, map[string]any{
		"title":   "hijacked",
		"content": "hijacked",
		"userId":  7,
	})
	if rr.Code != http.StatusForbidden {
		t.Fatalf("non-owner update: expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodGet, "/posts/3", "", nil)
	var after postBody
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &after); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if after.Title != "carol's note" || after.Content != "original" {
		t.Fatalf("rejected update must leave the post untouched: %+v", after)
	}

	admin := loginAs(t, server, "admin@example.com", "admin123")
	rr = doJSON(t, server, http.MethodPut, "/posts/3", admin, map[string]any{
		"title":   "moderated",
		"content": "edited by admin",
		"userId":  7,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("admin update: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var moderated postBody
	if err := json.Unmarshal(decodeEnvelope(t, rr).Data, &moderated); err != nil {
		t.Fatalf("decode post: %v", err)
	}
	if moderated.Title != "moderated" || moderated.AuthorID != 3 {
		t.Fatalf("admin edit must keep the original author: %+v", moderated)
	}
}

func TestUpdateMissingPostAnsweredBeforeOwnership(t *testing.T) {
	server := newTestServer()
	tok := loginAs(t, server, "user@example.com", "user123")

	rr := doJSON(t, server, http.MethodPut, "/posts/999", tok, map[string]any{
		"title":   "x",
		"content": "y",
		"userId":  1,
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDeletePostTwice(t *testing.T) {
	server := newTestServer()
	admin := loginAs(t, server, "admin@example.com", "admin123")

	rr := doJSON(t, server, http.MethodDelete, "/posts/1", admin, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("first delete: expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if decodeEnvelope(t, rr).Message != "post deleted successfully" {
		t.Fatalf("unexpected message: %s", rr.Body.String())
	}

	rr = doJSON(t, server, http.MethodDelete, "/posts/1", admin, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete: expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestDeleteForbiddenForNonOwner(t *testing.T) {
	server := newTestServer()
	tok := loginAs(t, server, "user@example.com", "user123")

	// Seed post 1 is owned by the admin account.
	rr := doJSON(t, server, http.MethodDelete, "/posts/1", tok, nil)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestListCacheReplaysBytesUntilMutation(t *testing.T) {
	server := newTestServer()

	first := doJSON(t, server, http.MethodGet, "/posts", "", nil)
	second := doJSON(t, server, http.MethodGet, "/posts", "", nil)
	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("expected 200/200, got %d/%d", first.Code, second.Code)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Fatalf("cached read must replay identical bytes:\n%s\n%s",
			first.Body.String(), second.Body.String())
	}

	tok := loginAs(t, server, "user@example.com", "user123")
	rr := doJSON(t, server, http.MethodPost, "/posts", tok, map[string]any{
		"title":   "freshly written",
		"content": "invalidates the list cache",
		"userId":  2,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}

	third := doJSON(t, server, http.MethodGet, "/posts", "", nil)
	if third.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", third.Code)
	}
	if bytes.Equal(third.Body.Bytes(), first.Body.Bytes()) {
		t.Fatalf("mutation must invalidate the cached listing")
	}
	if !bytes.Contains(third.Body.Bytes(), []byte("freshly written")) {
		t.Fatalf("listing after mutation misses the new post: %s", third.Body.String())
	}
}
