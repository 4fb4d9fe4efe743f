package service

import (
	"context"

	entity "catalog/internal/domain"
	"catalog/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type SummaryService struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
	logger       *zap.Logger
}

func NewSummaryService(categoryRepo repository.CategoryRepository, itemRepo repository.ItemRepository, logger *zap.Logger) *SummaryService {
	return &SummaryService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		logger:       logger,
	}
}

// Summary runs the three home page aggregates concurrently. A failing
// aggregate is recorded in the summary instead of failing the others.
func (s *SummaryService) Summary(ctx context.Context) entity.Summary {
	var sum entity.Summary

	var eg errgroup.Group
	eg.Go(func() error {
		sum.CategoryCount, sum.CategoryCountErr = s.categoryRepo.Count(ctx)
		return nil
	})
	eg.Go(func() error {
		sum.ItemCount, sum.ItemCountErr = s.itemRepo.Count(ctx)
		return nil
	})
	eg.Go(func() error {
		sum.TotalStock, sum.TotalStockErr = s.itemRepo.TotalStock(ctx)
		return nil
	})
	_ = eg.Wait()

	if err := sum.Err(); err != nil {
		s.logger.Error("summary aggregate failed", zap.Error(err))
	}
	return sum
}
