// Package identity carries the authenticated shopper through a request.
//
// Authentication itself happens elsewhere; the storefront only verifies the
// bearer token it is handed and exposes the resulting Identity.
package identity

import "context"

// Identity is an authenticated shopper.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the identity attached to ctx, or nil for anonymous
// requests.
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(contextKey{}).(*Identity)
	return id
}
