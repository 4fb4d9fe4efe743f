package seed

import (
	"context"
	"errors"
	"testing"

	entity "catalog/internal/domain"
	"catalog/internal/repository"
	"catalog/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRun(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	res, err := Run(ctx, store.Categories(), store.Items(), zap.NewNop())
	require.NoError(t, err)
	assert.Len(t, res.Categories, len(sampleCategories))
	assert.Len(t, res.Items, len(sampleItems))

	items, err := store.Items().List(ctx)
	require.NoError(t, err)
	require.Len(t, items, len(sampleItems))
	for _, item := range items {
		require.Len(t, item.Categories, 1, item.Name)
	}

	total, err := store.Items().TotalStock(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 73+34+59+87+12+68+43, total)

	detail, err := store.Categories().FindItemsReferencing(ctx, res.Categories[6].ID)
	require.NoError(t, err)
	require.Len(t, detail, 1)
	assert.Equal(t, "Harry Potter and the Sorcerer's Stone", detail[0].Name)
}

type failingCategories struct {
	repository.CategoryRepository
	after int
}

func (f *failingCategories) Create(ctx context.Context, c *entity.Category) error {
	if f.after == 0 {
		return errors.New("disk full")
	}
	f.after--
	return f.CategoryRepository.Create(ctx, c)
}

func TestRun_StopsOnCategoryFailure(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	res, err := Run(ctx, &failingCategories{CategoryRepository: store.Categories(), after: 3}, store.Items(), zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sporting items")
	assert.Len(t, res.Categories, 3)
	assert.Empty(t, res.Items)

	count, err := store.Items().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
