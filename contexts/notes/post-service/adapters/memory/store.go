package memory

import (
	"context"
	"sync"

	"noteboard/contexts/notes/post-service/domain/entities"
	"noteboard/contexts/notes/post-service/ports"
)

// Store is the in-memory post repository. Mutations serialize on the write
// lock so identifier assignment stays unique and updates are never torn.
type Store struct {
	mu     sync.RWMutex
	posts  []entities.Post
	nextID int64
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

func (s *Store) ListAll(_ context.Context) ([]entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Post, len(s.posts))
	copy(items, s.posts)
	return items, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (entities.Post, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, post := range s.posts {
		if post.ID == id {
			return post, true, nil
		}
	}
	return entities.Post{}, false, nil
}

func (s *Store) Create(_ context.Context, post entities.Post) (entities.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.nextID
	s.nextID++
	s.posts = append(s.posts, post)
	return post, nil
}

func (s *Store) Update(_ context.Context, id int64, update ports.PostUpdate) (entities.Post, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, post := range s.posts {
		if post.ID != id {
			continue
		}
		post.Title = update.Title
		post.Content = update.Content
		post.UserID = update.UserID
		s.posts[i] = post
		return post, true, nil
	}
	return entities.Post{}, false, nil
}

func (s *Store) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, post := range s.posts {
		if post.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
