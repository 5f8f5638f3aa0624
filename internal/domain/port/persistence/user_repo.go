package persistence

import (
	"context"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
)

// UserRepository defines the methods needed to store and look up accounts
type UserRepository interface {
	// Create persists a new user and fills in its generated ID
	//
	// Possible errors:
	// - ErrDuplicateUser: if the username is already taken
	// - ErrDatabaseConnection: if the store is unreachable
	Create(ctx context.Context, user *entity.User) error

	// GetByID retrieves a user by id
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByUsername retrieves a user by username, used during login
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
