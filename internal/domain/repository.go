package domain

import "context"

// ListQuery selects a page of products. Skip/Limit follow the usual
// offset pagination math; ordering is the store's natural order, no sort
// key is applied.
type ListQuery struct {
	// OwnerID, when non-empty, restricts results to products owned by
	// that seller.
	OwnerID string
	// SearchText, when non-empty, matches products whose name contains
	// the text (case-insensitive, unanchored substring).
	SearchText string
	Skip       int64
	Limit      int64
}

// ProductRepository defines the contract for product storage.
type ProductRepository interface {
	// Insert stores a new product and returns the store-assigned id.
	Insert(ctx context.Context, product *Product) (string, error)
	// FindByID returns ErrProductNotFound when no product matches.
	FindByID(ctx context.Context, id string) (*Product, error)
	// OwnerOf returns the owner id of a product, or ErrProductNotFound.
	OwnerOf(ctx context.Context, id string) (string, error)
	// DeleteByID removes a product. Deleting an absent id is not an error.
	DeleteByID(ctx context.Context, id string) error
	// UpdateFields applies a field-level patch. Matching nothing is not
	// an error.
	UpdateFields(ctx context.Context, id string, patch ProductPatch) error
	// List returns a page of public product projections.
	List(ctx context.Context, q ListQuery) ([]ProductCard, error)
}
