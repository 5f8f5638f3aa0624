package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ledgerworks/budget-ledger/internal/domain/entity"
	errs "github.com/ledgerworks/budget-ledger/internal/domain/error"
	coreport "github.com/ledgerworks/budget-ledger/internal/domain/port/core"
	"github.com/ledgerworks/budget-ledger/internal/infrastructure/adapter/model"
)

// CategoryRepository implements the CategoryRepository port using GORM
type CategoryRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

func NewCategoryRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func categoryModelToEntity(m *model.Category) *entity.Category {
	category := &entity.Category{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		TotalBudget: m.TotalBudget,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	category.SetSpent(m.Spent)
	return category
}

// handleDatabaseError standardizes database error handling
func (r *CategoryRepository) handleDatabaseError(operation string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrCategoryNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"error": err.Error(),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return errs.ErrDuplicateCategory
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create inserts a new category row and backfills the generated id
func (r *CategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.Category{
		UserID:      category.UserID,
		Name:        category.Name,
		TotalBudget: category.TotalBudget,
		Spent:       category.Spent(),
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Create(&categoryModel)
	if result.Error != nil {
		return r.handleDatabaseError("creating category", result.Error)
	}

	category.ID = categoryModel.ID
	return nil
}

// GetByName retrieves a user's category by name
func (r *CategoryRepository) GetByName(ctx context.Context, userID uint64, name string) (*entity.Category, error) {
	var categoryModel model.Category
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		First(&categoryModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting category", result.Error)
	}
	return categoryModelToEntity(&categoryModel), nil
}

// GetByNameLocked retrieves a user's category by name with a FOR UPDATE row
// lock, so the spend total read here stays stable until the scope commits
func (r *CategoryRepository) GetByNameLocked(ctx context.Context, userID uint64, name string) (*entity.Category, error) {
	var categoryModel model.Category
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND name = ?", userID, name).
		First(&categoryModel)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking category", result.Error)
	}
	return categoryModelToEntity(&categoryModel), nil
}

// GetByIDLocked retrieves a category by id with a FOR UPDATE row lock
func (r *CategoryRepository) GetByIDLocked(ctx context.Context, id uint64) (*entity.Category, error) {
	var categoryModel model.Category
	result := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&categoryModel, id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("locking category by id", result.Error)
	}
	return categoryModelToEntity(&categoryModel), nil
}

// UpdateSpent writes the running spend total
func (r *CategoryRepository) UpdateSpent(ctx context.Context, categoryID uint64, spentInCents int64) error {
	result := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", categoryID).
		Updates(map[string]interface{}{
			"spent":      spentInCents,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating spend total", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrCategoryNotFound
	}
	return nil
}

// UpdateBudget writes the budget ceiling
func (r *CategoryRepository) UpdateBudget(ctx context.Context, categoryID uint64, budgetInCents int64) error {
	result := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", categoryID).
		Updates(map[string]interface{}{
			"total_budget": budgetInCents,
			"updated_at":   r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating budget", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category row
func (r *CategoryRepository) Delete(ctx context.Context, categoryID uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.Category{}, categoryID)
	if result.Error != nil {
		return r.handleDatabaseError("deleting category", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrCategoryNotFound
	}
	return nil
}

// ListByUser returns every category owned by the user, oldest first
func (r *CategoryRepository) ListByUser(ctx context.Context, userID uint64) ([]*entity.Category, error) {
	var categoryModels []model.Category
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&categoryModels)
	if result.Error != nil {
		return nil, r.handleDatabaseError("listing categories", result.Error)
	}

	categories := make([]*entity.Category, 0, len(categoryModels))
	for i := range categoryModels {
		categories = append(categories, categoryModelToEntity(&categoryModels[i]))
	}
	return categories, nil
}
