// Package delivery holds the entry points that serve quill to the outside world.
package delivery

import "context"

// Delivery is a server started by the composition root.
type Delivery interface {
	Serve(ctx context.Context) error
}
