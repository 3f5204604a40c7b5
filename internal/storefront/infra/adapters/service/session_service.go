package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"

	"github.com/dekoratoriai/storefront/internal/business"
	"github.com/dekoratoriai/storefront/internal/cart"
	"github.com/dekoratoriai/storefront/internal/identity"
	"github.com/dekoratoriai/storefront/internal/storage"
	"github.com/dekoratoriai/storefront/internal/storefront/core/domain/entity"
	"github.com/dekoratoriai/storefront/internal/storefront/core/ports"
)

var _ ports.SessionService = (*sessionService)(nil)

const lockStripes = 64

// sessionService loads session state from a shared store. Each session's
// keys live under its own prefix, and requests of one session are
// serialized so read-modify-write cycles do not interleave.
type sessionService struct {
	kv    storage.Store
	locks [lockStripes]sync.Mutex
}

func NewSessionService(kv storage.Store) ports.SessionService {
	return &sessionService{kv: kv}
}

func (s *sessionService) Open(ctx context.Context, sessionID string, id *identity.Identity) (*entity.Session, func(), error) {
	mu := &s.locks[stripe(sessionID)]
	mu.Lock()

	scoped := storage.Scoped(s.kv, sessionID)

	biz, err := business.Load(ctx, scoped, id)
	if err != nil {
		mu.Unlock()
		return nil, nil, fmt.Errorf("open session: %w", err)
	}
	c, err := cart.Load(ctx, scoped, biz)
	if err != nil {
		mu.Unlock()
		return nil, nil, fmt.Errorf("open session: %w", err)
	}

	return &entity.Session{
		ID:       sessionID,
		Identity: id,
		Business: biz,
		Cart:     c,
	}, mu.Unlock, nil
}

func stripe(sessionID string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return h.Sum32() % lockStripes
}
