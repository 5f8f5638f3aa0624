package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/persistence"
	"github.com/ledgerworks/budget-ledger/internal/domain/port/security"
)

// Service handles account registration and login
type Service struct {
	uow          persistence.UnitOfWork
	hasher       security.PasswordHasher
	tokens       security.TokenManager
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewService(
	uow persistence.UnitOfWork,
	hasher security.PasswordHasher,
	tokens security.TokenManager,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		hasher:       hasher,
		tokens:       tokens,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Register creates an account and its reserved Uncategorized category in one
// commit scope, so every account starts with a default bucket for unassigned
// spending.
func (s *Service) Register(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errs.ErrInvalidRequest
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	account, err := entity.NewUser(username, passwordHash, s.timeProvider)
	if err != nil {
		return nil, err
	}

	txCtx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin registration: %w", err)
	}

	err = func() error {
		if err := s.uow.GetUserRepository(txCtx).Create(txCtx, account); err != nil {
			return err
		}
		defaultCategory, err := entity.NewCategory(account.ID, entity.UncategorizedName, nil, s.timeProvider)
		if err != nil {
			return err
		}
		return s.uow.GetCategoryRepository(txCtx).Create(txCtx, defaultCategory)
	}()
	if err != nil {
		if rbErr := s.uow.Rollback(txCtx); rbErr != nil {
			s.logger.Error("Failed to roll back registration", map[string]any{
				"error":          rbErr.Error(),
				"original_error": err.Error(),
			})
		}
		return nil, err
	}

	if err := s.uow.Commit(txCtx); err != nil {
		return nil, fmt.Errorf("failed to commit registration: %w", err)
	}

	s.logger.Info("User registered", map[string]any{
		"user_id":  account.ID,
		"username": account.Username,
	})
	return account, nil
}

// Login verifies the credentials and issues a session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	account, err := s.uow.GetUserRepository(ctx).GetByUsername(ctx, username)
	if err != nil {
		if errs.IsNotFoundError(err) {
			return "", errs.ErrInvalidCredentials
		}
		return "", err
	}

	if err := s.hasher.Compare(account.PasswordHash, password); err != nil {
		return "", err
	}

	token, err := s.tokens.Generate(account.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("User logged in", map[string]any{
		"user_id": account.ID,
	})
	return token, nil
}

// GetByID loads an account by id
func (s *Service) GetByID(ctx context.Context, userID uint64) (*entity.User, error) {
	return s.uow.GetUserRepository(ctx).GetByID(ctx, userID)
}
