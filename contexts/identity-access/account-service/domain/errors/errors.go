package errors

import "errors"

var (
	ErrInvalidRequest     = errors.New("name, email and password are required")
	ErrInvalidRole        = errors.New("role must be one of: admin, user, guest")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")

	ErrTokenMissing = errors.New("token not provided")
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)
