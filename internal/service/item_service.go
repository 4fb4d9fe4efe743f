package service

import (
	"context"
	"errors"
	"slices"

	entity "catalog/internal/domain"
	"catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type ItemService struct {
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

func NewItemService(itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository, logger *zap.Logger) *ItemService {
	return &ItemService{
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (s *ItemService) List(ctx context.Context) ([]entity.PopulatedItem, error) {
	return s.itemRepo.List(ctx)
}

func (s *ItemService) Get(ctx context.Context, id primitive.ObjectID) (*entity.PopulatedItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// CategoryOptions lists every category, marking the ones in checked.
func (s *ItemService) CategoryOptions(ctx context.Context, checked []primitive.ObjectID) ([]entity.CategoryOption, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return markChecked(categories, checked), nil
}

func markChecked(categories []entity.Category, checked []primitive.ObjectID) []entity.CategoryOption {
	options := make([]entity.CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, entity.CategoryOption{
			Category: c,
			Checked:  slices.Contains(checked, c.ID),
		})
	}
	return options
}

// Edit loads the item and the category options for its update form
// concurrently, with the item's current categories checked.
func (s *ItemService) Edit(ctx context.Context, id primitive.ObjectID) (*entity.PopulatedItem, []entity.CategoryOption, error) {
	var (
		item       *entity.PopulatedItem
		categories []entity.Category
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		item, err = s.itemRepo.FindByID(egCtx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrItemNotFound
		}
		return err
	})
	eg.Go(func() error {
		var err error
		categories, err = s.categoryRepo.List(egCtx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	current := make([]primitive.ObjectID, 0, len(item.Categories))
	for _, c := range item.Categories {
		current = append(current, c.ID)
	}
	return item, markChecked(categories, current), nil
}

// checkCategories fails with ErrUnknownCategory unless every id exists.
func (s *ItemService) checkCategories(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return ErrUnknownCategory
	}
	return nil
}

func (s *ItemService) Create(ctx context.Context, input entity.ItemInput) (*entity.Item, error) {
	if err := s.checkCategories(ctx, input.Category); err != nil {
		return nil, err
	}

	item := &entity.Item{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created", zap.String("id", item.ID.Hex()), zap.String("name", item.Name))
	return item, nil
}

// Update replaces every writable field of the item and returns the stored record.
func (s *ItemService) Update(ctx context.Context, id primitive.ObjectID, input entity.ItemInput) (*entity.PopulatedItem, error) {
	if err := s.checkCategories(ctx, input.Category); err != nil {
		return nil, err
	}

	updated, err := s.itemRepo.Update(ctx, &entity.Item{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("item updated", zap.String("id", id.Hex()))
	return updated, nil
}

func (s *ItemService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.itemRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}

	s.logger.Info("item deleted", zap.String("id", id.Hex()))
	return nil
}
