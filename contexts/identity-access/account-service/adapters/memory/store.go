package memory

import (
	"context"
	"sync"

	"noteboard/contexts/identity-access/account-service/domain/entities"
	domainerrors "noteboard/contexts/identity-access/account-service/domain/errors"
)

// Store is the in-memory user repository. Process restart resets it to
// whatever the composition root seeds.
type Store struct {
	mu     sync.RWMutex
	users  []entities.User
	nextID int64
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

func (s *Store) FindByEmail(_ context.Context, email string) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return entities.User{}, false, nil
}

func (s *Store) FindByID(_ context.Context, id int64) (entities.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.ID == id {
			return user, true, nil
		}
	}
	return entities.User{}, false, nil
}

func (s *Store) Create(_ context.Context, user entities.User) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return entities.User{}, domainerrors.ErrEmailTaken
		}
	}

	user.ID = s.nextID
	s.nextID++
	s.users = append(s.users, user)
	return user, nil
}

func (s *Store) ListAll(_ context.Context) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.User, len(s.users))
	copy(items, s.users)
	return items, nil
}
