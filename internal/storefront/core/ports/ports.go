package ports

import (
	"context"

	"github.com/dekoratoriai/storefront/internal/catalog"
	"github.com/dekoratoriai/storefront/internal/identity"
	"github.com/dekoratoriai/storefront/internal/notify"
	"github.com/dekoratoriai/storefront/internal/storefront/core/domain/entity"
)

type Catalog interface {
	Categories() []catalog.Category
	Category(key string) (catalog.Category, error)
	Products(ctx context.Context, key string) ([]catalog.Product, error)
	Product(ctx context.Context, key, code string) (catalog.Product, error)
}

// SessionService opens the business and cart state of one browser session.
// The returned release func must be called once the request is done with
// the session.
type SessionService interface {
	Open(ctx context.Context, sessionID string, id *identity.Identity) (*entity.Session, func(), error)
}

type AppointmentService interface {
	SendAppointment(ctx context.Context, req notify.AppointmentRequest) (string, error)
}
