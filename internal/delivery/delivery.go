// Package delivery defines the contract for transport servers.
package delivery

import "context"

// Delivery is a transport surface that the application runtime starts and
// stops through its lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
