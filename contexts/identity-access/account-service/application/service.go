package application

import (
	"context"
	"log/slog"
	"strings"

	"noteboard/contexts/identity-access/account-service/domain/entities"
	domainerrors "noteboard/contexts/identity-access/account-service/domain/errors"
	"noteboard/contexts/identity-access/account-service/ports"
)

// Service implements registration, login and profile lookup over the user
// repository, hashing and token ports.
type Service struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Tokens ports.TokenService
	Mailer ports.WelcomeMailProducer
	Logger *slog.Logger
}

// LoginResult pairs the authenticated profile with its bearer token.
type LoginResult struct {
	User  entities.Profile
	Token string
}

// Register creates an account, defaulting the role to "user". The welcome
// email is enqueued fire-and-forget: a queue failure is logged and swallowed.
func (s Service) Register(ctx context.Context, name, email, password, role string) (entities.Profile, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return entities.Profile{}, domainerrors.ErrInvalidRequest
	}
	if role == "" {
		role = entities.RoleUser
	}
	if !entities.IsValidRole(role) {
		return entities.Profile{}, domainerrors.ErrInvalidRole
	}

	digest, err := s.Hasher.Hash(password)
	if err != nil {
		return entities.Profile{}, err
	}

	created, err := s.Users.Create(ctx, entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Role:         role,
	})
	if err != nil {
		return entities.Profile{}, err
	}

	logger := ResolveLogger(s.Logger)
	logger.Info("user registered",
		"event", "account_registered",
		"module", "identity-access/account-service",
		"layer", "application",
		"user_id", created.ID,
		"role", created.Role,
	)

	if s.Mailer != nil {
		if err := s.Mailer.EnqueueWelcome(ctx, ports.WelcomeEvent{
			Name:  created.Name,
			Email: created.Email,
		}); err != nil {
			logger.Warn("welcome email enqueue failed",
				"event", "account_welcome_enqueue_failed",
				"module", "identity-access/account-service",
				"layer", "application",
				"user_id", created.ID,
				"error", err.Error(),
			)
		}
	}

	return created.Profile(), nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error so callers cannot tell which failed.
func (s Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, domainerrors.ErrInvalidRequest
	}

	user, found, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return LoginResult{}, err
	}
	if !found || !s.Hasher.Verify(password, user.PasswordHash) {
		ResolveLogger(s.Logger).Warn("login rejected",
			"event", "account_login_rejected",
			"module", "identity-access/account-service",
			"layer", "application",
			"email", email,
		)
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{User: user.Profile(), Token: token}, nil
}

// Me returns the caller's own profile.
func (s Service) Me(ctx context.Context, userID int64) (entities.Profile, error) {
	user, found, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return entities.Profile{}, err
	}
	if !found {
		return entities.Profile{}, domainerrors.ErrUserNotFound
	}
	return user.Profile(), nil
}

// ListUsers returns every profile in insertion order, hashes excluded.
func (s Service) ListUsers(ctx context.Context) ([]entities.Profile, error) {
	users, err := s.Users.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	profiles := make([]entities.Profile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Profile())
	}
	return profiles, nil
}
