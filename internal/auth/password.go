package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the account does not exist, so an
// unknown email costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("site-backend:dummy-password"), bcrypt.MinCost)

type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = 12
	}
	return &Hasher{cost: cost}
}

func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *Hasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CompareDummy burns a comparison and always fails.
func (h *Hasher) CompareDummy(password string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
	return false
}
