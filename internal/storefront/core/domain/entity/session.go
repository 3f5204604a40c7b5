package entity

import (
	"github.com/dekoratoriai/storefront/internal/business"
	"github.com/dekoratoriai/storefront/internal/cart"
	"github.com/dekoratoriai/storefront/internal/identity"
)

// Session is the per-browser state loaded for a request.
type Session struct {
	ID       string
	Identity *identity.Identity
	Business *business.Store
	Cart     *cart.Cart
}
