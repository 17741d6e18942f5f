package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/markethub/products-api/internal/app/dto"
	"github.com/markethub/products-api/internal/app/service"
	"github.com/markethub/products-api/internal/domain"
	"github.com/markethub/products-api/internal/infrastructure/http/middleware"
	"github.com/markethub/products-api/internal/infrastructure/http/response"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// decodeAndValidate decodes the JSON body into v and runs the schema
// validation gate. A false return means the error response was already
// written.
func (h *ProductHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body",
			slog.String("error", err.Error()),
		)
		response.Message(w, http.StatusBadRequest, "Invalid request body.")
		return false
	}
	if err := validate.Struct(v); err != nil {
		response.Message(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Field '%s' failed validation on '%s'.", strings.ToLower(fe.Field()), fe.Tag())
	}
	return "Invalid request body."
}

// AddProduct handles POST /product/add.
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Message(w, http.StatusUnauthorized, "Authorization header is required.")
		return
	}

	var req dto.AddProductRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.AddProduct(r.Context(), caller, &req); err != nil {
		response.Message(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	response.Message(w, http.StatusOK, "Product is added successfully.")
}

// GetProductDetails handles GET /product/details/{id}.
func (h *ProductHandler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.GetProductDetails(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.Message(w, http.StatusNotFound, "Product does not exist.")
			return
		}
		response.Message(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	response.Product(w, "success", product)
}

// DeleteProduct handles DELETE /product/delete/{id}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Message(w, http.StatusUnauthorized, "Authorization header is required.")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteProduct(r.Context(), caller, id); err != nil {
		response.Message(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	response.Message(w, http.StatusOK, "Product is deleted successfully.")
}

// EditProduct handles PUT /product/edit/{id}.
func (h *ProductHandler) EditProduct(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Message(w, http.StatusUnauthorized, "Authorization header is required.")
		return
	}

	var req dto.EditProductRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.EditProduct(r.Context(), caller, id, &req); err != nil {
		response.Message(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	response.Message(w, http.StatusOK, "Product is updated successfully.")
}

// ListForBuyer handles POST /product/buyer/list.
func (h *ProductHandler) ListForBuyer(w http.ResponseWriter, r *http.Request) {
	var req dto.ListProductsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	products, err := h.service.ListForBuyer(r.Context(), &req)
	if err != nil {
		response.Message(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	response.Products(w, "success", products)
}

// ListForSeller handles POST /product/seller/list.
func (h *ProductHandler) ListForSeller(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		response.Message(w, http.StatusUnauthorized, "Authorization header is required.")
		return
	}

	var req dto.ListProductsRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	products, err := h.service.ListForSeller(r.Context(), caller, &req)
	if err != nil {
		response.Message(w, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	response.Products(w, "success", products)
}
