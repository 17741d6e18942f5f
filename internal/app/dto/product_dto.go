package dto

import "github.com/markethub/products-api/internal/domain"

// AddProductRequest is the body of POST /product/add. There is no owner
// field: the owner is always stamped from the authenticated caller.
type AddProductRequest struct {
	Name        string  `json:"name" validate:"required,max=60"`
	Brand       string  `json:"brand" validate:"required,max=60"`
	Category    string  `json:"category" validate:"required,max=60"`
	Description string  `json:"description" validate:"required,max=1000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	Image       string  `json:"image" validate:"omitempty,url"`
}

// ToProduct converts the request into a domain entity owned by ownerID.
func (r *AddProductRequest) ToProduct(ownerID string) *domain.Product {
	return &domain.Product{
		OwnerID:     ownerID,
		Name:        r.Name,
		Brand:       r.Brand,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Image:       r.Image,
	}
}

// EditProductRequest is the body of PUT /product/edit/{id}. Every field is
// optional; absent fields keep their stored values.
type EditProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=60"`
	Brand       *string  `json:"brand" validate:"omitempty,max=60"`
	Category    *string  `json:"category" validate:"omitempty,max=60"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity" validate:"omitempty,min=1"`
	Image       *string  `json:"image" validate:"omitempty,url"`
}

// ToPatch converts the request into a field-level patch.
func (r *EditProductRequest) ToPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:        r.Name,
		Brand:       r.Brand,
		Category:    r.Category,
		Description: r.Description,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Image:       r.Image,
	}
}

// ListProductsRequest is the body of the buyer and seller list endpoints.
type ListProductsRequest struct {
	Page       int    `json:"page" validate:"required,min=1"`
	Limit      int    `json:"limit" validate:"required,min=1"`
	SearchText string `json:"searchText" validate:"omitempty,max=60"`
}

// Skip returns the offset implied by the 1-based page number.
func (r *ListProductsRequest) Skip() int64 {
	return int64(r.Page-1) * int64(r.Limit)
}

// ProductResponse is the detail view of a product. The owner id is not
// part of the shape at all, so it can never leak.
type ProductResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Image       string  `json:"image,omitempty"`
}

// ToProductResponse converts a domain Product to its detail view.
func ToProductResponse(p *domain.Product) *ProductResponse {
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Quantity:    p.Quantity,
		Image:       p.Image,
	}
}

// ProductCardResponse is a list item: the public projection only.
type ProductCardResponse struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Brand string  `json:"brand"`
	Image string  `json:"image,omitempty"`
}

// ToProductCardResponses converts a page of projections to list items.
func ToProductCardResponses(cards []domain.ProductCard) []ProductCardResponse {
	responses := make([]ProductCardResponse, len(cards))
	for i, c := range cards {
		responses[i] = ProductCardResponse{
			Name:  c.Name,
			Price: c.Price,
			Brand: c.Brand,
			Image: c.Image,
		}
	}
	return responses
}
