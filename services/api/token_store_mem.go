package api

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memTokenStore keeps the full token table in memory. It mirrors the database
// store's semantics exactly and backs the lifecycle tests; rows are retained
// after revocation just like their persisted counterparts.
type memTokenStore struct {
	now func() time.Time

	mu      sync.Mutex
	byValue map[string]uuid.UUID
	byID    map[uuid.UUID]AccessToken
}

func newMemTokenStore(now func() time.Time) *memTokenStore {
	if now == nil {
		now = time.Now
	}
	return &memTokenStore{
		now:     now,
		byValue: make(map[string]uuid.UUID),
		byID:    make(map[uuid.UUID]AccessToken),
	}
}

func (s *memTokenStore) Issue(_ context.Context, projectID uuid.UUID, clientEmail string, ttlDays int) (AccessToken, error) {
	if ttlDays <= 0 {
		return AccessToken{}, ErrInvalidTTL
	}

	value, err := newTokenValue()
	if err != nil {
		return AccessToken{}, err
	}

	now := s.now().UTC()
	token := AccessToken{
		ID:          uuid.New(),
		ProjectID:   projectID,
		ClientEmail: clientEmail,
		Value:       value,
		ExpiresAt:   now.AddDate(0, 0, ttlDays),
		IsActive:    true,
		CreatedAt:   now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byValue[value] = token.ID
	s.byID[token.ID] = token
	return token, nil
}

func (s *memTokenStore) Lookup(_ context.Context, value string) (AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byValue[value]
	if !ok {
		return AccessToken{}, ErrTokenNotFound
	}
	token := s.byID[id]
	if !token.IsActive {
		return AccessToken{}, ErrTokenNotFound
	}
	if token.ExpiredAt(s.now().UTC()) {
		return AccessToken{}, ErrTokenExpired
	}
	return token, nil
}

func (s *memTokenStore) Touch(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.byID[id]
	if !ok {
		return ErrTokenNotFound
	}
	now := s.now().UTC()
	token.LastUsedAt = &now
	s.byID[id] = token
	return nil
}

func (s *memTokenStore) Revoke(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.byID[id]
	if !ok {
		return ErrTokenNotFound
	}
	token.IsActive = false
	s.byID[id] = token
	return nil
}

func (s *memTokenStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]AccessToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tokens []AccessToken
	for _, token := range s.byID {
		if token.ProjectID == projectID {
			tokens = append(tokens, token)
		}
	}
	return tokens, nil
}
