package wishlist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cleanmart/backend/pkg/db/models"
	pkgerrors "github.com/cleanmart/backend/pkg/errors"
	"github.com/cleanmart/backend/pkg/kv"
	"github.com/cleanmart/backend/pkg/logger"
)

type stubProducts struct {
	byID map[uuid.UUID]*models.Product
}

func (s *stubProducts) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func wishlistKey(token string) string { return "test:wishlist:" + token }

func newFixture(t *testing.T) (*stubProducts, *Store, *models.Product) {
	t.Helper()
	product := &models.Product{ID: uuid.New(), Name: "מגבונים", NameAr: "مناديل مبللة"}
	products := &stubProducts{byID: map[uuid.UUID]*models.Product{product.ID: product}}
	store, err := NewStore(kv.NewMemory(), products, wishlistKey, logger.New(logger.Options{ServiceName: "test"}))
	require.NoError(t, err)
	return products, store, product
}

func TestAddIsIdempotent(t *testing.T) {
	_, store, product := newFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "tok", product.ID))
	require.NoError(t, store.Add(ctx, "tok", product.ID))

	saved, err := store.List(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, product.ID, saved[0].ID)
}

func TestAddUnknownProduct(t *testing.T) {
	_, store, _ := newFixture(t)

	err := store.Add(context.Background(), "tok", uuid.New())

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRemoveAndClear(t *testing.T) {
	products, store, product := newFixture(t)
	ctx := context.Background()

	other := &models.Product{ID: uuid.New(), Name: "סבון", NameAr: "صابون"}
	products.byID[other.ID] = other

	require.NoError(t, store.Add(ctx, "tok", product.ID))
	require.NoError(t, store.Add(ctx, "tok", other.ID))

	require.NoError(t, store.Remove(ctx, "tok", product.ID))
	saved, err := store.List(ctx, "tok")
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, other.ID, saved[0].ID)

	require.NoError(t, store.Clear(ctx, "tok"))
	saved, err = store.List(ctx, "tok")
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestListDropsDeletedProducts(t *testing.T) {
	products, store, product := newFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "tok", product.ID))
	delete(products.byID, product.ID)

	saved, err := store.List(ctx, "tok")
	require.NoError(t, err)
	assert.Empty(t, saved)
}
