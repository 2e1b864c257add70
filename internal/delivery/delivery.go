// Package delivery defines the inbound transport contract the application
// binaries run.
package delivery

import "context"

// Delivery is a transport that serves the application until the context is
// canceled or the process shuts it down.
type Delivery interface {
	Serve(ctx context.Context) error
}
