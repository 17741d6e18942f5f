package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the response convention of the API: a message plus an
// optional product or products payload.
type Envelope struct {
	Message  string `json:"message"`
	Product  any    `json:"product,omitempty"`
	Products any    `json:"products,omitempty"`
}

// JSON sends a JSON response.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Message sends an envelope carrying only a message.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Message: message})
}

// Product sends a success envelope with a single product.
func Product(w http.ResponseWriter, message string, product any) {
	JSON(w, http.StatusOK, Envelope{Message: message, Product: product})
}

// Products sends a success envelope with a product list.
func Products(w http.ResponseWriter, message string, products any) {
	JSON(w, http.StatusOK, Envelope{Message: message, Products: products})
}
