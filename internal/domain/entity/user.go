package entity

import (
	"strings"
	"time"

	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
)

// User represents a registered account. Every category, transaction and
// recurring payment is owned by exactly one user.
type User struct {
	ID           uint64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser creates a new user with the given username and password hash
func NewUser(username, passwordHash string, timeProvider coreport.TimeProvider) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.ErrInvalidRequest
	}
	if passwordHash == "" {
		return nil, errs.ErrInvalidRequest
	}

	return &User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    timeProvider.Now(),
	}, nil
}
