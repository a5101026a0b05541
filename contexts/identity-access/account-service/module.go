package account

import (
	"context"
	"log/slog"
	"time"

	bcryptadapter "noteboard/contexts/identity-access/account-service/adapters/bcrypt"
	httpadapter "noteboard/contexts/identity-access/account-service/adapters/http"
	"noteboard/contexts/identity-access/account-service/adapters/memory"
	"noteboard/contexts/identity-access/account-service/adapters/token"
	"noteboard/contexts/identity-access/account-service/application"
	"noteboard/contexts/identity-access/account-service/domain/entities"
	"noteboard/contexts/identity-access/account-service/ports"
)

// Module is the account-service composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Tokens  ports.TokenService
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
	Tokens ports.TokenService
	Mailer ports.WelcomeMailProducer
	Logger *slog.Logger
}

// NewModule wires the account service and transport handler using explicit ports.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Users:  deps.Users,
		Hasher: deps.Hasher,
		Tokens: deps.Tokens,
		Mailer: deps.Mailer,
		Logger: deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Service: service,
			Logger:  deps.Logger,
		},
		Tokens: deps.Tokens,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters and the fixed seed dataset: one admin and one regular user.
func NewInMemoryModule(logger *slog.Logger, jwtSecret string, jwtTTL time.Duration, mailer ports.WelcomeMailProducer) Module {
	store := memory.NewStore()
	hasher := bcryptadapter.Hasher{}
	seed(store, hasher)

	module := NewModule(Dependencies{
		Users:  store,
		Hasher: hasher,
		Tokens: token.JWTService{Secret: []byte(jwtSecret), TTL: jwtTTL},
		Mailer: mailer,
		Logger: logger,
	})
	module.Store = store
	return module
}

func seed(store *memory.Store, hasher ports.PasswordHasher) {
	seeds := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Admin User", "admin@example.com", "admin123", entities.RoleAdmin},
		{"Regular User", "user@example.com", "user123", entities.RoleUser},
	}
	for _, item := range seeds {
		digest, err := hasher.Hash(item.password)
		if err != nil {
			continue
		}
		_, _ = store.Create(context.Background(), entities.User{
			Name:         item.name,
			Email:        item.email,
			PasswordHash: digest,
			Role:         item.role,
		})
	}
}
