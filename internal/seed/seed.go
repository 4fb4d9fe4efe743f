// Package seed populates an empty catalog with sample categories and items.
package seed

import (
	"context"
	"fmt"

	entity "catalog/internal/domain"
	"catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type sampleItem struct {
	name        string
	description string
	category    int // index into sampleCategories
	price       float64
	stock       int
}

var sampleCategories = []entity.Category{
	{Name: "Clothing", Description: "Men's, women's, and children's clothing, as well as items such as shoes, accessories, and jewelry."},
	{Name: "Electronics", Description: "Items such as smartphones, computers, televisions, and other consumer electronics."},
	{Name: "Household items", Description: "Items such as furniture, bedding, kitchenware, and home decor."},
	{Name: "Sporting items", Description: "Items such as athletic equipment, bicycles, and outdoor gear."},
	{Name: "Beauty and Personal Care", Description: "Items such as makeup, skincare, haircare and grooming products."},
	{Name: "Food and Beverages", Description: "Items such as snacks, packaged food items, and beverages."},
	{Name: "Books and Media", Description: "Items such as books, music, movies, and games."},
	{Name: "Toys and Hobbies", Description: "Items such as action figures, board games, and craft supplies."},
}

var sampleItems = []sampleItem{
	{"Men's Denim Jacket", "A classic men's denim jacket featuring a button-front design and multiple pockets.", 0, 40, 73},
	{"Samsung Galaxy S20 5G", "A 5G-enabled smartphone featuring a 6.2-inch display, triple rear camera, and long-lasting battery life.", 1, 800, 34},
	{"Memory Foam Pillow", "A memory foam pillow that conforms to the shape of your head and neck for optimal support and comfort.", 2, 20, 59},
	{"Wilson Pro Staff Tennis Racket", "A high-performance tennis racket designed for advanced players with a lightweight and balanced frame.", 3, 200, 87},
	{"L'Oreal Paris Elvive Total Repair 5 Shampoo", "A nourishing shampoo that repairs and fortifies damaged hair.", 4, 8, 12},
	{"Organic Fair Trade Dark Chocolate", "A rich, organic and fair trade dark chocolate with a deep and complex flavor profile.", 5, 12, 68},
	{"Harry Potter and the Sorcerer's Stone", "The first book in the best-selling Harry Potter series, describing the adventures of a young wizard named Harry Potter.", 6, 15, 43},
}

// Result accumulates the records created by a run.
type Result struct {
	Categories []entity.Category
	Items      []entity.Item
}

// Run creates the sample categories one after another, then the sample
// items concurrently. It stops at the first failure and returns what was
// created so far.
func Run(ctx context.Context, categories repository.CategoryRepository, items repository.ItemRepository, logger *zap.Logger) (*Result, error) {
	res := &Result{}
	if err := createCategories(ctx, categories, res, logger); err != nil {
		return res, err
	}
	if err := createItems(ctx, items, res, logger); err != nil {
		return res, err
	}
	return res, nil
}

func createCategories(ctx context.Context, repo repository.CategoryRepository, res *Result, logger *zap.Logger) error {
	for _, sample := range sampleCategories {
		category := sample
		if err := repo.Create(ctx, &category); err != nil {
			return fmt.Errorf("failed to create category %q: %w", category.Name, err)
		}
		logger.Info("new category", zap.String("id", category.ID.Hex()), zap.String("name", category.Name))
		res.Categories = append(res.Categories, category)
	}
	return nil
}

func createItems(ctx context.Context, repo repository.ItemRepository, res *Result, logger *zap.Logger) error {
	created := make([]entity.Item, len(sampleItems))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, sample := range sampleItems {
		if sample.category >= len(res.Categories) {
			return fmt.Errorf("item %q references missing category %d", sample.name, sample.category)
		}
		item := entity.Item{
			Name:        sample.name,
			Description: sample.description,
			Price:       sample.price,
			Stock:       sample.stock,
			Category:    []primitive.ObjectID{res.Categories[sample.category].ID},
		}
		i := i
		eg.Go(func() error {
			if err := repo.Create(egCtx, &item); err != nil {
				return fmt.Errorf("failed to create item %q: %w", item.Name, err)
			}
			logger.Info("new item", zap.String("id", item.ID.Hex()), zap.String("name", item.Name))
			created[i] = item
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	res.Items = created
	return nil
}
