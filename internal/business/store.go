package business

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/dekoratoriai/storefront/internal/identity"
	"github.com/dekoratoriai/storefront/internal/storage"
)

// Persisted keys.
const (
	AccountKey    = "businessAccount"
	modeKeyPrefix = "userMode_"
)

// ModeKey is where the mode of a shopper is persisted.
func ModeKey(uid string) string {
	return modeKeyPrefix + uid
}

var (
	ErrNoIdentity        = errors.New("business: no authenticated identity")
	ErrEmailMismatch     = errors.New("business: account email does not match identity")
	ErrNoBusinessAccount = errors.New("business: no business account")
)

// Store owns the business account and pricing mode of one session.
//
// Operations that violate a precondition are logged, change nothing and
// return one of the sentinel errors above. Storage failures are returned
// wrapped; in-memory state only changes after a successful write.
type Store struct {
	kv     storage.Store
	logger *slog.Logger
	tracer trace.Tracer

	mu       sync.RWMutex
	identity *identity.Identity
	account  *Account
	mode     Mode
}

// Load builds the store for id, the identity login transition. A persisted
// account is kept only when its email matches id; a foreign or corrupt
// record is deleted. A nil id yields the NoIdentity state.
func Load(ctx context.Context, kv storage.Store, id *identity.Identity) (*Store, error) {
	s := &Store{
		kv:     kv,
		logger: slog.Default().With("component", "business"),
		tracer: otel.Tracer("github.com/dekoratoriai/storefront/internal/business"),
		mode:   ModeStandard,
	}
	if id == nil {
		return s, nil
	}

	ctx, span := s.tracer.Start(ctx, "business.Load", trace.WithAttributes(attribute.String("uid", id.UID)))
	defer span.End()

	s.identity = id

	account, err := s.loadAccount(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	s.account = account

	raw, err := kv.Get(ctx, ModeKey(id.UID))
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		span.RecordError(err)
		return nil, fmt.Errorf("business: load mode: %w", err)
	default:
		if mode, ok := ParseMode(string(raw)); ok {
			s.mode = mode
		}
	}

	span.SetAttributes(attribute.String("state", s.state().String()))
	return s, nil
}

func (s *Store) loadAccount(ctx context.Context, id *identity.Identity) (*Account, error) {
	raw, err := s.kv.Get(ctx, AccountKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("business: load account: %w", err)
	}

	var account Account
	if err := json.Unmarshal(raw, &account); err != nil {
		s.logger.WarnContext(ctx, "discarding corrupt business account", "error", err)
		return nil, s.deleteAccount(ctx)
	}
	if account.Email != id.Email {
		s.logger.WarnContext(ctx, "discarding business account of another identity", "uid", id.UID)
		return nil, s.deleteAccount(ctx)
	}
	return &account, nil
}

func (s *Store) deleteAccount(ctx context.Context) error {
	if err := s.kv.Delete(ctx, AccountKey); err != nil {
		return fmt.Errorf("business: delete account: %w", err)
	}
	return nil
}

// SetBusinessAccount associates account with the current identity. A nil
// account removes the persisted one without touching the mode.
func (s *Store) SetBusinessAccount(ctx context.Context, account *Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if account == nil {
		if err := s.deleteAccount(ctx); err != nil {
			return err
		}
		s.account = nil
		return nil
	}

	if s.identity == nil {
		s.logger.ErrorContext(ctx, "cannot set business account without identity")
		return ErrNoIdentity
	}
	if account.Email != s.identity.Email {
		s.logger.ErrorContext(ctx, "business account email must match identity email", "uid", s.identity.UID)
		return ErrEmailMismatch
	}

	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("business: encode account: %w", err)
	}
	if err := s.kv.Set(ctx, AccountKey, raw); err != nil {
		return fmt.Errorf("business: save account: %w", err)
	}

	stored := *account
	s.account = &stored
	return nil
}

// ClearBusinessAccount removes the account, forces standard mode and
// forgets the persisted mode of the identity.
func (s *Store) ClearBusinessAccount(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.deleteAccount(ctx); err != nil {
		return err
	}
	if s.identity != nil {
		if err := s.kv.Delete(ctx, ModeKey(s.identity.UID)); err != nil {
			return fmt.Errorf("business: delete mode: %w", err)
		}
	}

	s.account = nil
	s.mode = ModeStandard
	return nil
}

func (s *Store) SwitchToBusinessMode(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.account == nil {
		s.logger.WarnContext(ctx, "no business account to switch to")
		return ErrNoBusinessAccount
	}
	if err := s.persistMode(ctx, ModeBusiness); err != nil {
		return err
	}
	s.mode = ModeBusiness
	return nil
}

func (s *Store) SwitchToStandardMode(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persistMode(ctx, ModeStandard); err != nil {
		return err
	}
	s.mode = ModeStandard
	return nil
}

func (s *Store) persistMode(ctx context.Context, mode Mode) error {
	if s.identity == nil {
		return nil
	}
	if err := s.kv.Set(ctx, ModeKey(s.identity.UID), []byte(mode)); err != nil {
		return fmt.Errorf("business: save mode: %w", err)
	}
	return nil
}

// Logout drops the identity and its in-memory state. Persisted data is
// left alone.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	s.account = nil
	s.mode = ModeStandard
}

func (s *Store) HasBusinessAccount() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasBusinessAccount()
}

func (s *Store) IsBusinessMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isBusinessMode()
}

func (s *Store) DiscountRate() int {
	return DiscountRate
}

func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Account returns a copy of the current account, or nil.
func (s *Store) Account() *Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.account == nil {
		return nil
	}
	a := *s.account
	return &a
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var account *Account
	if s.account != nil {
		a := *s.account
		account = &a
	}
	return Snapshot{
		State:              s.state(),
		HasBusinessAccount: s.hasBusinessAccount(),
		IsBusinessMode:     s.isBusinessMode(),
		BusinessAccount:    account,
		DiscountRate:       DiscountRate,
		CurrentMode:        s.mode,
	}
}

func (s *Store) hasBusinessAccount() bool {
	return s.identity != nil && s.account != nil
}

func (s *Store) isBusinessMode() bool {
	return s.hasBusinessAccount() && s.mode == ModeBusiness
}

func (s *Store) state() State {
	switch {
	case s.identity == nil:
		return StateNoIdentity
	case s.isBusinessMode():
		return StateBusinessMode
	case s.account != nil:
		return StateStandardWithAccount
	default:
		return StateStandardNoAccount
	}
}
