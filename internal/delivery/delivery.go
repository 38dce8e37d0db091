// Package delivery defines the contract every transport surface of the
// service fulfills.
package delivery

import "context"

// Delivery is a long-running transport (e.g., an HTTP server) managed by the
// application lifecycle.
type Delivery interface {
	// Serve blocks, accepting requests until the server is shut down.
	Serve(ctx context.Context) error
}
