package entities

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
	RoleGuest = "guest"
)

// IsValidRole reports whether role is one of the enumerated account roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleUser, RoleGuest:
		return true
	default:
		return false
	}
}

// User is a registered account. PasswordHash never leaves the service
// boundary; externally visible projections use Profile.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
}

// Profile is the externally observable projection of a User.
type Profile struct {
	ID    int64
	Name  string
	Email string
	Role  string
}

// Profile strips the password hash from a User.
func (u User) Profile() Profile {
	return Profile{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
