package service

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
	"github.com/aCoruja/TechSecurityWebsite/internal/core/ports"
)

const (
	SchemeBcrypt = "bcrypt"
	SchemePlain  = "plain"
)

// BcryptHasher stores salted bcrypt hashes. It is the default scheme.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Scheme() string { return SchemeBcrypt }

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(stored, password string) error {
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// PlainHasher stores passwords as given. It exists for parity with legacy
// demo deployments and must not be used anywhere real.
type PlainHasher struct{}

func (PlainHasher) Scheme() string { return SchemePlain }

func (PlainHasher) Hash(password string) (string, error) { return password, nil }

func (PlainHasher) Verify(stored, password string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return domain.ErrInvalidCredentials
	}
	return nil
}

// NewPasswordHasher resolves a scheme name from configuration.
func NewPasswordHasher(scheme string, bcryptCost int) (ports.PasswordHasher, error) {
	switch scheme {
	case "", SchemeBcrypt:
		return NewBcryptHasher(bcryptCost), nil
	case SchemePlain:
		return PlainHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}
