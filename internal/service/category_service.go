package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segyhp/finance-tracker/internal/domain"
	"github.com/segyhp/finance-tracker/internal/repository"
	customError "github.com/segyhp/finance-tracker/pkg/errors"

	"github.com/rs/zerolog/log"
)

type CategoryService struct {
	CategoryRepo repository.CategoryRepository
	now          func() time.Time
}

func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{
		CategoryRepo: categoryRepo,
		now:          time.Now,
	}
}

// Create appends a category at the end of its type's ordering
func (s *CategoryService) Create(ctx context.Context, request *domain.CreateCategoryRequest) (*domain.Category, error) {
	sortOrder, err := s.CategoryRepo.NextSortOrder(ctx, request.Type)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	color := request.Color
	if color == "" {
		color = domain.DefaultCategoryColor
	}

	now := s.now()
	category := &domain.Category{
		ID:          uuid.New(),
		Name:        request.Name,
		Description: request.Description,
		Type:        request.Type,
		Color:       color,
		Icon:        request.Icon,
		IsActive:    true,
		SortOrder:   sortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.CategoryRepo.Create(ctx, category); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return category, nil
}

func (s *CategoryService) List(ctx context.Context, categoryType *domain.CategoryType) ([]*domain.Category, error) {
	categories, err := s.CategoryRepo.List(ctx, categoryType)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}

	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	category, err := s.CategoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, categoryLookupError(id, err)
	}

	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, request *domain.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.CategoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, categoryLookupError(id, err)
	}

	request.Apply(category)
	category.UpdatedAt = s.now()

	if err := s.CategoryRepo.Update(ctx, category); err != nil {
		return nil, categoryLookupError(id, err)
	}

	return category, nil
}

// Delete hides a category that transactions still point to and removes it otherwise
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.CategoryRepo.GetByID(ctx, id); err != nil {
		return categoryLookupError(id, err)
	}

	count, err := s.CategoryRepo.CountTransactions(ctx, id)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	if count > 0 {
		err = s.CategoryRepo.Deactivate(ctx, id, s.now())
	} else {
		err = s.CategoryRepo.Delete(ctx, id)
	}
	if err != nil {
		return categoryLookupError(id, err)
	}

	log.Info().
		Str("category_id", id.String()).
		Bool("soft", count > 0).
		Msg("Category deleted")

	return nil
}

func (s *CategoryService) Reorder(ctx context.Context, request *domain.ReorderCategoriesRequest) error {
	err := s.CategoryRepo.Reorder(ctx, request.Categories, s.now())
	if errors.Is(err, sql.ErrNoRows) {
		return customError.NewBusinessError(customError.ErrCodeCategoryNotFound,
			"One or more categories in the new order do not exist", customError.ErrCategoryNotFound)
	}
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

// SeedDefaults installs the starter categories when none exist yet and
// returns the active categories afterwards
func (s *CategoryService) SeedDefaults(ctx context.Context) ([]*domain.Category, error) {
	existing, err := s.CategoryRepo.List(ctx, nil)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	now := s.now()
	defaults := domain.DefaultCategories()
	for _, category := range defaults {
		category.CreatedAt = now
		category.UpdatedAt = now
	}

	if err := s.CategoryRepo.CreateMany(ctx, defaults); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	log.Info().Int("count", len(defaults)).Msg("Default categories created")

	return defaults, nil
}

func categoryLookupError(id uuid.UUID, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return customError.WrapCategoryNotFound(id.String())
	}
	return customError.WrapDatabaseError(err)
}
