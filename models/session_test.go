package models

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/mmdatafocus/duka_backend/utils"
)

// countingIdentityStore records every lookup so tests can assert the
// cache-aside behaviour (primed sessions never hit the store).
type countingIdentityStore struct {
	lookups    int
	identities map[string]*Identity
}

func (s *countingIdentityStore) GetIdentity(_ context.Context, userId string) (*Identity, error) {
	s.lookups++
	identity := s.identities[userId]
	if identity == nil {
		return nil, utils.ErrorRecordNotFound
	}
	return identity, nil
}

func TestSessionManager_PrimedResolveSkipsStore(t *testing.T) {
	store := &countingIdentityStore{identities: map[string]*Identity{}}
	m := NewSessionManager(store)

	m.Prime(&Identity{Id: "u1", Email: "a@b.c", ShopName: "Duka A"})

	identity, err := m.Resolve(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if identity.ShopName != "Duka A" {
		t.Fatalf("expected shop name Duka A, got %q", identity.ShopName)
	}
	if store.lookups != 0 {
		t.Fatalf("expected zero store lookups for primed session, got %d", store.lookups)
	}
}

func TestSessionManager_MissDoesExactlyOneLookup(t *testing.T) {
	store := &countingIdentityStore{identities: map[string]*Identity{
		"u1": {Id: "u1", Email: "a@b.c", ShopName: "Duka A"},
	}}
	m := NewSessionManager(store)

	// Simulates resolving after a process restart: no primed entry.
	for i := 0; i < 3; i++ {
		identity, err := m.Resolve(context.Background(), "u1")
		if err != nil {
			t.Fatalf("Resolve #%d: %v", i+1, err)
		}
		if identity.Id != "u1" {
			t.Fatalf("Resolve #%d: expected u1, got %q", i+1, identity.Id)
		}
	}
	if store.lookups != 1 {
		t.Fatalf("expected exactly one store lookup across repeated resolves, got %d", store.lookups)
	}
}

func TestSessionManager_SignOutInvalidates(t *testing.T) {
	store := &countingIdentityStore{identities: map[string]*Identity{
		"u1": {Id: "u1", Email: "a@b.c", ShopName: "Duka A"},
	}}
	m := NewSessionManager(store)
	m.Prime(&Identity{Id: "u1", Email: "a@b.c", ShopName: "Duka A"})

	m.SignOut("u1")

	// The next resolve must go back to the store.
	if _, err := m.Resolve(context.Background(), "u1"); err != nil {
		t.Fatalf("Resolve after sign-out: %v", err)
	}
	if store.lookups != 1 {
		t.Fatalf("expected one store lookup after sign-out, got %d", store.lookups)
	}
}

func TestSessionManager_DeletedIdentityIsNotAuthenticated(t *testing.T) {
	store := &countingIdentityStore{identities: map[string]*Identity{}}
	m := NewSessionManager(store)

	_, err := m.Resolve(context.Background(), "gone")
	if !errors.Is(err, ErrorNotAuthenticated) {
		t.Fatalf("expected ErrorNotAuthenticated for deleted identity, got %v", err)
	}
}

func TestSessionManager_EmptyUserIdIsNotAuthenticated(t *testing.T) {
	store := &countingIdentityStore{identities: map[string]*Identity{}}
	m := NewSessionManager(store)

	_, err := m.Resolve(context.Background(), "")
	if !errors.Is(err, ErrorNotAuthenticated) {
		t.Fatalf("expected ErrorNotAuthenticated for empty user id, got %v", err)
	}
	if store.lookups != 0 {
		t.Fatalf("expected no store lookup for empty user id, got %d", store.lookups)
	}
}

func TestSessionManager_SessionsAreIndependent(t *testing.T) {
	store := &countingIdentityStore{identities: map[string]*Identity{
		"u2": {Id: "u2", Email: "x@y.z", ShopName: "Duka B"},
	}}
	m := NewSessionManager(store)
	m.Prime(&Identity{Id: "u1", Email: "a@b.c", ShopName: "Duka A"})
	m.Prime(&Identity{Id: "u2", Email: "x@y.z", ShopName: "Duka B"})

	// Signing out one user must not disturb the other's cached entry.
	m.SignOut("u1")
	if _, err := m.Resolve(context.Background(), "u2"); err != nil {
		t.Fatalf("Resolve u2: %v", err)
	}
	if store.lookups != 0 {
		t.Fatalf("expected u2 to stay cached after u1 sign-out, got %d lookups", store.lookups)
	}
}
