package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	entity "catalog/internal/domain"
	"catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type categoryRepository struct {
	categories *mongo.Collection
	items      *mongo.Collection
	timeout    time.Duration
}

func NewCategoryRepository(db *mongo.Database, timeout time.Duration) repository.CategoryRepository {
	return &categoryRepository{
		categories: db.Collection(CollectionCategories),
		items:      db.Collection(CollectionItems),
		timeout:    timeout,
	}
}

// List only projects the name; the list and the item form never show descriptions.
func (r *categoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.D{{Key: "name", Value: 1}})

	cur, err := r.categories.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := []entity.Category{}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var category entity.Category
	err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find category %s: %w", id.Hex(), err)
	}
	return &category, nil
}

func (r *categoryRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]entity.Category, error) {
	categories := []entity.Category{}
	if len(ids) == 0 {
		return categories, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.categories.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	if err := cur.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindItemsReferencing(ctx context.Context, id primitive.ObjectID) ([]entity.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.items.Find(ctx, bson.M{"category": id}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find items of category %s: %w", id.Hex(), err)
	}

	items := []entity.Item{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if category.ID.IsZero() {
		category.ID = primitive.NewObjectID()
	}
	if _, err := r.categories.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("failed to insert category: %w", err)
	}
	return nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        category.Name,
		"description": category.Description,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated entity.Category
	err := r.categories.FindOneAndUpdate(ctx, bson.M{"_id": category.ID}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", category.ID.Hex(), err)
	}
	return &updated, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.categories.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return n, nil
}
