package mongodb

import (
	"testing"

	entity "catalog/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRestoreOrder(t *testing.T) {
	a, b, gone := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	item := entity.PopulatedItem{
		Item: entity.Item{Category: []primitive.ObjectID{b, gone, a}},
		Categories: []entity.Category{
			{ID: a, Name: "Alpha"},
			{ID: b, Name: "Beta"},
		},
	}

	restoreOrder(&item)

	assert.Equal(t, []entity.Category{{ID: b, Name: "Beta"}, {ID: a, Name: "Alpha"}}, item.Categories)
}

func TestPopulatePipeline(t *testing.T) {
	all := populatePipeline(nil)
	assert.Len(t, all, 2)
	assert.Equal(t, "$lookup", all[0][0].Key)

	id := primitive.NewObjectID()
	one := populatePipeline(bson.M{"_id": id})
	assert.Len(t, one, 3)
	assert.Equal(t, "$match", one[0][0].Key)
}
