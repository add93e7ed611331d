// Package api provides an HTTP client for the storefront REST API.
//
// # Overview
//
// This package defines the API client for communicating with the storefront
// backend. It handles HTTP communication, JSON serialization, bearer-token
// authentication with one-shot refresh, and type-safe representation of the
// catalog, cart, wishlist, order and account payloads.
//
// # Architecture
//
// The package is split by resource:
//
//   - client.go: HTTP client, request plumbing and the 401 refresh-and-retry path
//   - errors.go: the single Error type and server error-message extraction
//   - decode.go: list-shape normalization and the Money decimal type
//   - auth.go, catalog.go, cart.go, wishlist.go, orders.go, reviews.go: endpoints
//
// # Client Usage
//
// Create a client using the base URL from configuration and a token source
// (implemented by session.Context):
//
//	client, err := api.NewClient("https://shop.example.com/api", sess)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	lines, err := client.FetchCart(ctx)
//	if err != nil {
//		log.Printf("cart fetch failed: %v", err)
//	}
//
// # Error Handling
//
// Every method returns *Error. Its Message is extracted from the server's
// structured error body in a fixed priority order: a detail field, then
// message, then error, then the first element of a bare error array, then the
// transport error text, then an operation-specific default. Status carries
// the HTTP status, or 0 for transport failures.
//
// Two server responses are deliberately not errors: a 404 on the
// remove-by-product endpoints (the row is already gone) and a 400 duplicate
// add to the wishlist (the product is already there). Both resolve to nil.
//
// # Response Shapes
//
// The backend has grown several list response shapes over time: a bare JSON
// array, a DRF-paginated {count, next, previous, results} object, and legacy
// wrappers like {cart: [...]}. normalizeList flattens all of them at this
// boundary so nothing above this package ever sees the ambiguity.
package api
