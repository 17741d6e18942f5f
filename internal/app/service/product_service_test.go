package service_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/markethub/products-api/internal/app/dto"
	"github.com/markethub/products-api/internal/app/service"
	"github.com/markethub/products-api/internal/domain"
	"github.com/markethub/products-api/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func setup(t *testing.T) (*service.ProductService, *memory.ProductRepository) {
	t.Helper()
	repo := memory.NewProductRepository()
	tracer := sdktrace.NewTracerProvider().Tracer("test")
	meter := sdkmetric.NewMeterProvider().Meter("test")
	logger := slog.New(slog.DiscardHandler)
	return service.NewProductService(repo, tracer, meter, logger), repo
}

func addRequest(name, brand string, price float64) *dto.AddProductRequest {
	return &dto.AddProductRequest{
		Name:        name,
		Brand:       brand,
		Category:    "sports",
		Description: "A product used in tests",
		Price:       price,
		Quantity:    5,
	}
}

func sellerCaller(id string) domain.Caller {
	return domain.Caller{ID: id, Role: domain.RoleSeller}
}

func TestAddProductStampsOwnerFromCaller(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	err := svc.AddProduct(ctx, sellerCaller("seller-a"), addRequest("Shoe", "Nike", 10))
	require.NoError(t, err)

	// The in-memory store assigns sequential ids starting at 1.
	product, err := repo.FindByID(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, "Shoe", product.Name)
	assert.Equal(t, "seller-a", product.OwnerID)
}

func TestGetProductDetailsNeverExposesOwner(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, &domain.Product{
		OwnerID: "seller-a",
		Name:    "Shoe",
		Brand:   "Nike",
		Price:   10,
	})
	require.NoError(t, err)

	details, err := svc.GetProductDetails(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Shoe", details.Name)

	raw, err := json.Marshal(details)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "owner")
	assert.NotContains(t, string(raw), "seller-a")
}

func TestGetProductDetailsNotFound(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.GetProductDetails(context.Background(), "000000000000000000000099")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProductMissingIDIsSuccess(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.AddProduct(ctx, sellerCaller("seller-a"), addRequest("Shoe", "Nike", 10)))

	err := svc.DeleteProduct(ctx, sellerCaller("seller-a"), "000000000000000000000099")
	require.NoError(t, err)

	cards, err := repo.List(ctx, domain.ListQuery{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, cards, 1, "collection must be unchanged")
}

func TestEditProductAppliesOnlySuppliedFields(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	id, err := repo.Insert(ctx, &domain.Product{
		OwnerID:  "seller-a",
		Name:     "Shoe",
		Brand:    "Nike",
		Price:    10,
		Quantity: 5,
	})
	require.NoError(t, err)

	newPrice := 25.0
	err = svc.EditProduct(ctx, sellerCaller("seller-a"), id, &dto.EditProductRequest{Price: &newPrice})
	require.NoError(t, err)

	product, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 25.0, product.Price)
	assert.Equal(t, "Shoe", product.Name, "omitted fields keep prior values")
	assert.Equal(t, "Nike", product.Brand)
	assert.Equal(t, 5, product.Quantity)
	assert.Equal(t, "seller-a", product.OwnerID)
}

func TestListForBuyerPagination(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	names := []string{"Shoe", "Shirt", "Ball", "Bat", "Shorts"}
	for _, name := range names {
		require.NoError(t, svc.AddProduct(ctx, sellerCaller("seller-a"), addRequest(name, "Acme", 10)))
	}

	t.Run("result size is bounded by limit", func(t *testing.T) {
		page, err := svc.ListForBuyer(ctx, &dto.ListProductsRequest{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, page, 2)
	})

	t.Run("pages advance by (page-1)*limit", func(t *testing.T) {
		first, err := svc.ListForBuyer(ctx, &dto.ListProductsRequest{Page: 1, Limit: 2})
		require.NoError(t, err)
		second, err := svc.ListForBuyer(ctx, &dto.ListProductsRequest{Page: 2, Limit: 2})
		require.NoError(t, err)
		third, err := svc.ListForBuyer(ctx, &dto.ListProductsRequest{Page: 3, Limit: 2})
		require.NoError(t, err)

		assert.Equal(t, []string{"Shoe", "Shirt"}, cardNames(first))
		assert.Equal(t, []string{"Ball", "Bat"}, cardNames(second))
		assert.Equal(t, []string{"Shorts"}, cardNames(third))
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		page, err := svc.ListForBuyer(ctx, &dto.ListProductsRequest{Page: 9, Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("search is a case-insensitive substring match", func(t *testing.T) {
		page, err := svc.ListForBuyer(ctx, &dto.ListProductsRequest{Page: 1, Limit: 10, SearchText: "Sh"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Shoe", "Shirt", "Shorts"}, cardNames(page))

		page, err = svc.ListForBuyer(ctx, &dto.ListProductsRequest{Page: 1, Limit: 10, SearchText: "sHiRt"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Shirt"}, cardNames(page))
	})
}

func TestListForSellerOnlyReturnsOwnProducts(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.AddProduct(ctx, sellerCaller("seller-a"), addRequest("Shoe", "Nike", 10)))
	require.NoError(t, svc.AddProduct(ctx, sellerCaller("seller-b"), addRequest("Shirt", "Puma", 15)))

	page, err := svc.ListForSeller(ctx, sellerCaller("seller-b"), &dto.ListProductsRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"Shirt"}, cardNames(page))

	page, err = svc.ListForSeller(ctx, sellerCaller("seller-b"), &dto.ListProductsRequest{Page: 1, Limit: 10, SearchText: "Shoe"})
	require.NoError(t, err)
	assert.Empty(t, page, "another seller's product must never appear")
}

func TestBuyerAndSellerListScenario(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	require.NoError(t, svc.AddProduct(ctx, sellerCaller("seller-a"), addRequest("Shoe", "Nike", 10)))

	buyerPage, err := svc.ListForBuyer(ctx, &dto.ListProductsRequest{Page: 1, Limit: 10, SearchText: "shoe"})
	require.NoError(t, err)
	require.Len(t, buyerPage, 1)
	assert.Equal(t, "Shoe", buyerPage[0].Name)
	assert.Equal(t, 10.0, buyerPage[0].Price)
	assert.Equal(t, "Nike", buyerPage[0].Brand)

	sellerBPage, err := svc.ListForSeller(ctx, sellerCaller("seller-b"), &dto.ListProductsRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, sellerBPage)
}

func cardNames(cards []dto.ProductCardResponse) []string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.Name
	}
	return names
}

const firstID = "000000000000000000000001"
