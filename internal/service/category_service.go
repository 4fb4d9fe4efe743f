package service

import (
	"context"
	"errors"

	entity "catalog/internal/domain"
	"catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CategoryDetail is a category together with the items that reference it.
type CategoryDetail struct {
	Category *entity.Category
	Items    []entity.Item
}

type CategoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (s *CategoryService) List(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return category, nil
}

// Detail fetches the category and its referencing items concurrently.
func (s *CategoryService) Detail(ctx context.Context, id primitive.ObjectID) (*CategoryDetail, error) {
	var detail CategoryDetail

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		category, err := s.categoryRepo.FindByID(egCtx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCategoryNotFound
		}
		detail.Category = category
		return err
	})
	eg.Go(func() error {
		items, err := s.categoryRepo.FindItemsReferencing(egCtx, id)
		detail.Items = items
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create persists a sanitized form as a new category.
func (s *CategoryService) Create(ctx context.Context, form entity.CategoryForm) (*entity.Category, error) {
	category := &entity.Category{
		Name:        form.Name,
		Description: form.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.logger.Info("category created", zap.String("id", category.ID.Hex()), zap.String("name", category.Name))
	return category, nil
}

// Update replaces every writable field of the category and returns the stored record.
func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, form entity.CategoryForm) (*entity.Category, error) {
	updated, err := s.categoryRepo.Update(ctx, &entity.Category{
		ID:          id,
		Name:        form.Name,
		Description: form.Description,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("category updated", zap.String("id", id.Hex()))
	return updated, nil
}

// Delete removes the category when no item references it. When items still
// reference it, the current detail is returned with ErrCategoryInUse.
//
// The dependency check and the delete are not atomic: an item created in
// between can end up referencing a deleted category.
func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) (*CategoryDetail, error) {
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(detail.Items) > 0 {
		return detail, ErrCategoryInUse
	}

	err = s.categoryRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("category deleted", zap.String("id", id.Hex()))
	return detail, nil
}
