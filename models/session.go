package models

import (
	"context"
	"errors"
	"sync"

	"bitbucket.org/mmdatafocus/duka_backend/config"
	"bitbucket.org/mmdatafocus/duka_backend/utils"
	"gorm.io/gorm"
)

// ErrorNotAuthenticated is returned when a session cannot be resolved to
// a live identity (no session, or the account was deleted underneath).
var ErrorNotAuthenticated = errors.New("not authenticated")

// Identity is the session-cached view of an account and its shop.
type Identity struct {
	Id       string `json:"id"`
	Email    string `json:"email"`
	ShopName string `json:"shop_name"`
}

// IdentityStore resolves a user id to its identity. The production store
// reads users+shops; tests swap in a counting fake.
type IdentityStore interface {
	GetIdentity(ctx context.Context, userId string) (*Identity, error)
}

type dbIdentityStore struct{}

func (dbIdentityStore) GetIdentity(ctx context.Context, userId string) (*Identity, error) {
	db := config.GetDB()

	var user User
	if err := db.WithContext(ctx).Where("id = ?", userId).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, utils.StoreUnavailable(err)
	}
	shop, err := GetShop(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &Identity{Id: user.ID, Email: user.Email, ShopName: shop.ShopName}, nil
}

// SessionManager tracks authenticated callers for this process. The
// identity cache is cache-aside: primed on sign-in, repopulated with
// exactly one store lookup after a process restart, dropped on sign-out.
// One instance serves all callers; state is keyed per user, never global.
type SessionManager struct {
	mu    sync.Mutex
	store IdentityStore
	cache map[string]*Identity
}

// Sessions is the process-wide manager wired to the database store.
var Sessions = NewSessionManager(dbIdentityStore{})

func NewSessionManager(store IdentityStore) *SessionManager {
	return &SessionManager{
		store: store,
		cache: make(map[string]*Identity),
	}
}

// Prime stores an identity without a store round-trip (used on sign-in,
// where the authenticator just loaded it anyway).
func (m *SessionManager) Prime(identity *Identity) {
	if identity == nil || identity.Id == "" {
		return
	}
	m.mu.Lock()
	m.cache[identity.Id] = identity
	m.mu.Unlock()
}

// Resolve returns the caller's identity. Cached entries are returned
// without touching the store; a miss performs exactly one lookup and
// caches the result. A user deleted underneath the session yields
// ErrorNotAuthenticated, not a panic.
func (m *SessionManager) Resolve(ctx context.Context, userId string) (*Identity, error) {
	if userId == "" {
		return nil, ErrorNotAuthenticated
	}

	m.mu.Lock()
	cached := m.cache[userId]
	m.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	identity, err := m.store.GetIdentity(ctx, userId)
	if err != nil {
		if errors.Is(err, utils.ErrorRecordNotFound) {
			return nil, ErrorNotAuthenticated
		}
		return nil, err
	}

	m.mu.Lock()
	m.cache[userId] = identity
	m.mu.Unlock()
	return identity, nil
}

// SignOut drops the cached identity. Token revocation is handled by the
// redis allowlist (see Logout).
func (m *SessionManager) SignOut(userId string) {
	m.mu.Lock()
	delete(m.cache, userId)
	m.mu.Unlock()
}
