// Package storage is the persistence adapter behind the business and cart
// stores. It mirrors the semantics of browser local storage: a flat
// string-keyed map with atomic single-key writes and no expiry.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key has never been written or
// has been deleted.
var ErrNotFound = errors.New("storage: key not found")

// Store is implemented by every storage driver.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// GenerateKey joins a scope and a key, e.g. "<session>:standardCart".
func GenerateKey(scope, key string) string {
	return fmt.Sprintf("%s:%s", scope, key)
}

type scoped struct {
	store Store
	scope string
}

// Scoped returns a view of s where every key is prefixed with scope. It is
// how one browser session gets its own "local storage".
func Scoped(s Store, scope string) Store {
	return scoped{store: s, scope: scope}
}

func (s scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.store.Get(ctx, GenerateKey(s.scope, key))
}

func (s scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, GenerateKey(s.scope, key), value)
}

func (s scoped) Delete(ctx context.Context, key string) error {
	return s.store.Delete(ctx, GenerateKey(s.scope, key))
}
