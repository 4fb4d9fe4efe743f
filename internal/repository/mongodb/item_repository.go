package mongodb

import (
	"context"
	"fmt"
	"time"

	entity "catalog/internal/domain"
	"catalog/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type itemRepository struct {
	items   *mongo.Collection
	timeout time.Duration
}

func NewItemRepository(db *mongo.Database, timeout time.Duration) repository.ItemRepository {
	return &itemRepository{
		items:   db.Collection(CollectionItems),
		timeout: timeout,
	}
}

// populatePipeline resolves the category references of every matched item
// into a "categories" array.
func populatePipeline(match bson.M) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: CollectionCategories},
			{Key: "localField", Value: "category"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "categories"},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
	)
}

// restoreOrder sorts the looked-up categories back into reference order;
// $lookup returns them in collection order.
func restoreOrder(item *entity.PopulatedItem) {
	byID := make(map[primitive.ObjectID]entity.Category, len(item.Categories))
	for _, c := range item.Categories {
		byID[c.ID] = c
	}
	ordered := make([]entity.Category, 0, len(item.Categories))
	for _, id := range item.Category {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	item.Categories = ordered
}

func (r *itemRepository) aggregate(ctx context.Context, match bson.M) ([]entity.PopulatedItem, error) {
	cur, err := r.items.Aggregate(ctx, populatePipeline(match))
	if err != nil {
		return nil, err
	}
	items := []entity.PopulatedItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	for i := range items {
		restoreOrder(&items[i])
	}
	return items, nil
}

func (r *itemRepository) List(ctx context.Context) ([]entity.PopulatedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	items, err := r.aggregate(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (r *itemRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.PopulatedItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	items, err := r.aggregate(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("failed to find item %s: %w", id.Hex(), err)
	}
	if len(items) == 0 {
		return nil, repository.ErrNotFound
	}
	return &items[0], nil
}

func (r *itemRepository) Create(ctx context.Context, item *entity.Item) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	if item.Category == nil {
		item.Category = []primitive.ObjectID{}
	}
	if _, err := r.items.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (r *itemRepository) Update(ctx context.Context, item *entity.Item) (*entity.PopulatedItem, error) {
	category := item.Category
	if category == nil {
		category = []primitive.ObjectID{}
	}
	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"stock":       item.Stock,
		"category":    category,
	}}

	opCtx, cancel := context.WithTimeout(ctx, r.timeout)
	res, err := r.items.UpdateByID(opCtx, item.ID, update)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("failed to update item %s: %w", item.ID.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}
	return r.FindByID(ctx, item.ID)
}

func (r *itemRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.items.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *itemRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.items.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return n, nil
}

func (r *itemRepository) TotalStock(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalStock", Value: bson.D{{Key: "$sum", Value: "$stock"}}},
		}}},
	}
	cur, err := r.items.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum stock: %w", err)
	}

	var groups []struct {
		TotalStock int64 `bson:"totalStock"`
	}
	if err := cur.All(ctx, &groups); err != nil {
		return 0, fmt.Errorf("failed to decode stock sum: %w", err)
	}
	if len(groups) == 0 {
		return 0, nil
	}
	return groups[0].TotalStock, nil
}
