package memory

import (
	"context"
	"errors"
	"testing"

	"noteboard/contexts/identity-access/account-service/domain/entities"
	domainerrors "noteboard/contexts/identity-access/account-service/domain/errors"
)

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	store := NewStore()

	first, err := store.Create(context.Background(), entities.User{Name: "A", Email: "a@x.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := store.Create(context.Background(), entities.User{Name: "B", Email: "b@x.com"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	store := NewStore()

	if _, err := store.Create(context.Background(), entities.User{Email: "a@x.com"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	_, err := store.Create(context.Background(), entities.User{Email: "a@x.com"})
	if !errors.Is(err, domainerrors.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestFindByEmailIsExactMatch(t *testing.T) {
	store := NewStore()
	_, _ = store.Create(context.Background(), entities.User{Email: "a@x.com"})

	if _, found, _ := store.FindByEmail(context.Background(), "A@x.com"); found {
		t.Fatalf("email match must be case-sensitive")
	}
	if _, found, _ := store.FindByEmail(context.Background(), "a@x.com"); !found {
		t.Fatalf("expected exact match to be found")
	}
}

func TestFindByIDMissing(t *testing.T) {
	store := NewStore()
	if _, found, _ := store.FindByID(context.Background(), 42); found {
		t.Fatalf("expected missing id")
	}
}
