package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"noteboard/contexts/identity-access/account-service/domain/entities"
	domainerrors "noteboard/contexts/identity-access/account-service/domain/errors"
	"noteboard/contexts/identity-access/account-service/ports"
)

type accountClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 bearer tokens. Signing key and expiry
// window come from deployment configuration.
type JWTService struct {
	Secret []byte
	TTL    time.Duration
	Clock  ports.Clock
}

func (s JWTService) Issue(user entities.User) (string, error) {
	now := s.now()
	claims := accountClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl())),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify separates expiry from forgery so the transport can answer with
// distinct messages under the same 401 status.
func (s JWTService) Verify(raw string) (ports.Identity, error) {
	parsed, err := jwt.ParseWithClaims(raw, &accountClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, domainerrors.ErrTokenInvalid
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ports.Identity{}, domainerrors.ErrTokenExpired
		}
		return ports.Identity{}, domainerrors.ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*accountClaims)
	if !ok || !parsed.Valid {
		return ports.Identity{}, domainerrors.ErrTokenInvalid
	}
	return ports.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}

func (s JWTService) ttl() time.Duration {
	if s.TTL <= 0 {
		return 24 * time.Hour
	}
	return s.TTL
}

func (s JWTService) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}
