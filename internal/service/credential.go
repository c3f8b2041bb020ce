package service

import (
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore hashes and verifies passwords. It is an interface so tests
// can observe exactly when hashing work happens.
type CredentialStore interface {
	Hash(password string) (string, error)
	Verify(hashed, password string) bool
}

// BcryptCredentialStore is the production CredentialStore.
type BcryptCredentialStore struct {
	cost int
}

// NewBcryptCredentialStore constructs a store with the given cost, falling
// back to the bcrypt default when the cost is out of range.
func NewBcryptCredentialStore(cost int) *BcryptCredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptCredentialStore{cost: cost}
}

// Hash derives a bcrypt hash from the plaintext password.
func (s *BcryptCredentialStore) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func (s *BcryptCredentialStore) Verify(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
