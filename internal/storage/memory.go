package storage

import (
	"context"
	"sync"

	"link_librarian/internal/model"
)

// MemoryCredentialStore is an in-process CredentialStore for tests and local
// development. Records are copied on the way in and out.
type MemoryCredentialStore struct {
	mu    sync.RWMutex
	creds map[string]model.TenantCredential
}

// NewMemoryCredentialStore creates an empty in-memory store
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{creds: make(map[string]model.TenantCredential)}
}

func (s *MemoryCredentialStore) Find(ctx context.Context, teamID string) (*model.TenantCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, ok := s.creds[teamID]
	if !ok {
		return nil, ErrCredentialNotFound
	}
	return &cred, nil
}

func (s *MemoryCredentialStore) Save(ctx context.Context, cred *model.TenantCredential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds[cred.TeamID] = *cred
	return nil
}
