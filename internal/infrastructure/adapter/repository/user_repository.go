package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/model"
)

// UserRepository implements the UserRepository port using GORM
type UserRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func userModelToEntity(m *model.User) *entity.User {
	return &entity.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateUser
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create inserts a new account row and backfills the generated id
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := model.User{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&userModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating user", result.Error)
	}

	user.ID = userModel.ID
	return nil
}

// GetByID retrieves an account by id
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).First(&userModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user", result.Error)
	}
	return userModelToEntity(&userModel), nil
}

// GetByUsername retrieves an account by its login name
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.User
	result := r.db.WithContext(ctx).Where("username = ?", username).First(&userModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting user by username", result.Error)
	}
	return userModelToEntity(&userModel), nil
}
