package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/markethub/products-api/internal/domain"
)

// ProductRepository is an in-memory implementation of
// domain.ProductRepository. Products are kept in insertion order so
// offset pagination behaves like the document store's natural order.
type ProductRepository struct {
	mu       sync.RWMutex
	products []*domain.Product
	byID     map[string]*domain.Product
	nextID   int
}

// NewProductRepository creates a new in-memory product repository.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		byID: make(map[string]*domain.Product),
	}
}

// Insert stores a new product and assigns it an id.
func (r *ProductRepository) Insert(_ context.Context, product *domain.Product) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := time.Now().UTC()

	stored := *product
	stored.ID = fmt.Sprintf("%024x", r.nextID)
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.products = append(r.products, &stored)
	r.byID[stored.ID] = &stored

	product.ID = stored.ID
	product.CreatedAt = now
	product.UpdatedAt = now
	return stored.ID, nil
}

// FindByID retrieves a product by id.
func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.byID[id]
	if !exists {
		return nil, domain.ErrProductNotFound
	}

	clone := *product
	return &clone, nil
}

// OwnerOf returns the owner id of a product.
func (r *ProductRepository) OwnerOf(_ context.Context, id string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.byID[id]
	if !exists {
		return "", domain.ErrProductNotFound
	}
	return product.OwnerID, nil
}

// DeleteByID removes a product. Deleting an absent id is a no-op.
func (r *ProductRepository) DeleteByID(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return nil
	}
	delete(r.byID, id)

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			break
		}
	}
	return nil
}

// UpdateFields applies a field-level patch. Matching nothing is a no-op.
func (r *ProductRepository) UpdateFields(_ context.Context, id string, patch domain.ProductPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, exists := r.byID[id]
	if !exists {
		return nil
	}

	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Brand != nil {
		product.Brand = *patch.Brand
	}
	if patch.Category != nil {
		product.Category = *patch.Category
	}
	if patch.Description != nil {
		product.Description = *patch.Description
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	if patch.Quantity != nil {
		product.Quantity = *patch.Quantity
	}
	if patch.Image != nil {
		product.Image = *patch.Image
	}
	product.UpdatedAt = time.Now().UTC()
	return nil
}

// List returns a page of public projections in insertion order, applying
// the same case-insensitive substring match the document store uses.
func (r *ProductRepository) List(_ context.Context, q domain.ListQuery) ([]domain.ProductCard, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(q.SearchText)

	matched := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if q.OwnerID != "" && p.OwnerID != q.OwnerID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		matched = append(matched, p)
	}

	start := q.Skip
	if start > int64(len(matched)) {
		start = int64(len(matched))
	}
	end := start + q.Limit
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}

	page := matched[start:end]
	cards := make([]domain.ProductCard, len(page))
	for i, p := range page {
		cards[i] = domain.ProductCard{
			Name:  p.Name,
			Price: p.Price,
			Brand: p.Brand,
			Image: p.Image,
		}
	}
	return cards, nil
}
