package web

import (
	"context"
	"net/http"
)

// Server is the single-form UI plus its JSON twin.
type Server interface {
	// Start serves until ctx is cancelled, then shuts down gracefully.
	Start(ctx context.Context) error
	Handler() http.Handler
}
