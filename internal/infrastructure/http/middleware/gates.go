package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/markethub/products-api/internal/domain"
	"github.com/markethub/products-api/internal/infrastructure/http/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequireValidID rejects requests whose {id} path parameter is not a valid
// ObjectID hex string.
func RequireValidID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := primitive.ObjectIDFromHex(id); err != nil {
			response.Message(w, http.StatusBadRequest, "Invalid product id.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwnership allows a mutation only when the caller owns the
// product. A product that does not exist passes the gate: the mutation
// behind it is then a no-op that still reports success.
func RequireOwnership(repo domain.ProductRepository) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := CallerFromContext(r.Context())
			if !ok {
				response.Message(w, http.StatusUnauthorized, "Authorization header is required.")
				return
			}

			id := chi.URLParam(r, "id")
			ownerID, err := repo.OwnerOf(r.Context(), id)
			if err != nil {
				if errors.Is(err, domain.ErrProductNotFound) {
					next.ServeHTTP(w, r)
					return
				}
				response.Message(w, http.StatusInternalServerError, "Something went wrong.")
				return
			}

			if !caller.CanModify(ownerID) {
				response.Message(w, http.StatusForbidden, "Access denied. You do not own this product.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
