// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a server that accepts requests until ctx is cancelled or the
// fx lifecycle stops it.
type Delivery interface {
	Serve(ctx context.Context) error
}
