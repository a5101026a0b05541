package ports

import (
	"context"
	"time"

	"noteboard/contexts/notes/post-service/domain/entities"
)

// Role names the access-control layer branches on. Kept local to the
// context; cross-context imports are forbidden.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)

// Actor is the authenticated identity a mutation runs as. The transport
// layer builds it from a verified bearer token before any business logic.
type Actor struct {
	UserID int64
	Role   string
}

// PostUpdate carries the caller-mutable fields of a post. ID and AuthorID
// are invariant after creation and therefore absent here.
type PostUpdate struct {
	Title   string
	Content string
	UserID  int64
}

// PostRepository owns notes. Create assigns the next monotonic identifier;
// identifiers are never reused within a process lifetime.
type PostRepository interface {
	ListAll(ctx context.Context) ([]entities.Post, error)
	GetByID(ctx context.Context, id int64) (entities.Post, bool, error)
	Create(ctx context.Context, post entities.Post) (entities.Post, error)
	Update(ctx context.Context, id int64, update PostUpdate) (entities.Post, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ResponseCache is the read-through side channel for list/get responses,
// keyed by normalized request path. Callers must treat every error as a
// pass-through no-op, never as a request failure.
type ResponseCache interface {
	Get(ctx context.Context, key string, now time.Time) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, now time.Time) error
	InvalidateAll(ctx context.Context) error
}

type Clock interface {
	Now() time.Time
}
