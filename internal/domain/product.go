package domain

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product does not exist")
	ErrInvalidID       = errors.New("invalid product id")
)

// Product represents the product entity as stored in the catalog.
// OwnerID is set once at creation from the authenticated seller and is
// never included in any response payload.
type Product struct {
	ID          string
	OwnerID     string
	Name        string
	Brand       string
	Category    string
	Description string
	Price       float64
	Quantity    int
	Image       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductCard is the public projection of a product used by the list
// operations: name, price, brand and image only.
type ProductCard struct {
	Name  string
	Price float64
	Brand string
	Image string
}

// ProductPatch is a field-level partial update. Nil fields are left
// untouched; last writer wins.
type ProductPatch struct {
	Name        *string
	Brand       *string
	Category    *string
	Description *string
	Price       *float64
	Quantity    *int
	Image       *string
}
