package memory

import (
	"context"
	"testing"

	"github.com/markethub/products-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo *ProductRepository, owner, name string) string {
	t.Helper()
	id, err := repo.Insert(context.Background(), &domain.Product{
		OwnerID: owner,
		Name:    name,
		Brand:   "Acme",
		Price:   10,
	})
	require.NoError(t, err)
	return id
}

func TestInsertAssignsValidObjectIDHex(t *testing.T) {
	repo := NewProductRepository()

	id := seed(t, repo, "seller-a", "Shoe")
	assert.Len(t, id, 24)

	product, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, product.ID)
	assert.False(t, product.CreatedAt.IsZero())
}

func TestOwnerOf(t *testing.T) {
	repo := NewProductRepository()
	id := seed(t, repo, "seller-a", "Shoe")

	owner, err := repo.OwnerOf(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "seller-a", owner)

	_, err = repo.OwnerOf(context.Background(), "000000000000000000000099")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteByIDIsIdempotent(t *testing.T) {
	repo := NewProductRepository()
	id := seed(t, repo, "seller-a", "Shoe")

	require.NoError(t, repo.DeleteByID(context.Background(), id))
	require.NoError(t, repo.DeleteByID(context.Background(), id))

	_, err := repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdateFieldsOnMissingProductIsNoOp(t *testing.T) {
	repo := NewProductRepository()

	name := "Renamed"
	err := repo.UpdateFields(context.Background(), "000000000000000000000099", domain.ProductPatch{Name: &name})
	assert.NoError(t, err)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		seed(t, repo, "seller-a", name)
	}

	cards, err := repo.List(ctx, domain.ListQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "First", cards[0].Name)
	assert.Equal(t, "Second", cards[1].Name)
	assert.Equal(t, "Third", cards[2].Name)
}

func TestListSearchAndScope(t *testing.T) {
	repo := NewProductRepository()
	ctx := context.Background()

	seed(t, repo, "seller-a", "Shoe")
	seed(t, repo, "seller-a", "Ball")
	seed(t, repo, "seller-b", "Shirt")

	t.Run("substring match is case-insensitive", func(t *testing.T) {
		cards, err := repo.List(ctx, domain.ListQuery{SearchText: "sh", Limit: 10})
		require.NoError(t, err)
		require.Len(t, cards, 2)
		assert.Equal(t, "Shoe", cards[0].Name)
		assert.Equal(t, "Shirt", cards[1].Name)
	})

	t.Run("owner scope combines with search", func(t *testing.T) {
		cards, err := repo.List(ctx, domain.ListQuery{OwnerID: "seller-b", SearchText: "sh", Limit: 10})
		require.NoError(t, err)
		require.Len(t, cards, 1)
		assert.Equal(t, "Shirt", cards[0].Name)
	})

	t.Run("skip past the end yields an empty page", func(t *testing.T) {
		cards, err := repo.List(ctx, domain.ListQuery{Skip: 10, Limit: 5})
		require.NoError(t, err)
		assert.Empty(t, cards)
	})
}
