package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/security"
)

// DefaultHashCost is the work factor used when the configuration does not
// supply a valid one
const DefaultHashCost = 12

// bcrypt silently truncates longer inputs, so reject them up front
const maxPasswordBytes = 72

type BcryptHasher struct {
	cost int
}

// NewBcryptHasher builds a hasher with the given work factor. Costs outside
// bcrypt's supported range fall back to DefaultHashCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if len(password) > maxPasswordBytes {
		return "", errs.ErrInvalidRequest
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return errs.ErrInvalidCredentials
		}
		return err
	}
	return nil
}

var _ security.PasswordHasher = (*BcryptHasher)(nil)
