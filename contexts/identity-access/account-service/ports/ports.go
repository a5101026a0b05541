package ports

import (
	"context"
	"time"

	"noteboard/contexts/identity-access/account-service/domain/entities"
)

// Identity is the verified caller identity extracted from a bearer token.
type Identity struct {
	UserID int64
	Email  string
	Role   string
}

// UserRepository owns registered accounts. Create assigns the next monotonic
// identifier and fails with ErrEmailTaken when the email is already present.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (entities.User, bool, error)
	FindByID(ctx context.Context, id int64) (entities.User, bool, error)
	Create(ctx context.Context, user entities.User) (entities.User, error)
	ListAll(ctx context.Context) ([]entities.User, error)
}

// PasswordHasher produces and checks one-way salted digests. Verify is the
// only valid comparison; digests are never compared for equality directly.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain string, digest string) bool
}

// TokenService issues and validates signed bearer tokens carrying identity
// and role claims. Verify distinguishes ErrTokenExpired from ErrTokenInvalid.
type TokenService interface {
	Issue(user entities.User) (string, error)
	Verify(token string) (Identity, error)
}

// WelcomeEvent is the payload of the post-registration notification job.
type WelcomeEvent struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// WelcomeMailProducer enqueues the post-registration notification job.
// Enqueue failures must never affect the registration path.
type WelcomeMailProducer interface {
	EnqueueWelcome(ctx context.Context, event WelcomeEvent) error
}

// EventSource is the consumer side of the notification queue.
type EventSource interface {
	SubscribeWelcome(ctx context.Context, consumerGroup string, handler func(context.Context, WelcomeEvent) error) error
}

// EmailSender delivers a single welcome email attempt.
type EmailSender interface {
	SendWelcome(ctx context.Context, name string, email string) error
}

type Clock interface {
	Now() time.Time
}
