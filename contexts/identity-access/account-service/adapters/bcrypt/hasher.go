package bcryptadapter

import "golang.org/x/crypto/bcrypt"

// Hasher implements ports.PasswordHasher with bcrypt. Cost 10 keeps hashing
// expensive enough to slow offline guessing without hurting login latency.
type Hasher struct {
	Cost int
}

func (h Hasher) cost() int {
	if h.Cost < bcrypt.MinCost {
		return 10
	}
	return h.Cost
}

func (h Hasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost())
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h Hasher) Verify(plain string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
