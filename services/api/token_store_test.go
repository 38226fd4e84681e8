package api

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestStore(t *testing.T) (*memTokenStore, *fakeClock) {
	t.Helper()
	clock := newFakeClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	return newMemTokenStore(clock.Now), clock
}

func TestTokenValueShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		value, err := newTokenValue()
		require.NoError(t, err)

		// 32 random bytes encode to 43 characters of the URL-safe alphabet.
		assert.Len(t, value, 43)
		assert.NotContains(t, value, "+")
		assert.NotContains(t, value, "/")
		assert.NotContains(t, value, "=")

		assert.False(t, seen[value], "token values must not repeat")
		seen[value] = true
	}
}

func TestIssueRejectsNonPositiveTTL(t *testing.T) {
	store, _ := newTestStore(t)

	for _, ttl := range []int{0, -1, -30} {
		_, err := store.Issue(context.Background(), uuid.New(), "client@example.com", ttl)
		assert.ErrorIs(t, err, ErrInvalidTTL, "ttl %d", ttl)
	}
}

func TestIssueThenLookupRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	projectID := uuid.New()

	issued, err := store.Issue(context.Background(), projectID, "client@example.com", 30)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Value)
	assert.True(t, issued.IsActive)

	found, err := store.Lookup(context.Background(), issued.Value)
	require.NoError(t, err)
	assert.Equal(t, projectID, found.ProjectID)
	assert.Equal(t, "client@example.com", found.ClientEmail)
	assert.Equal(t, issued.ExpiresAt, found.ExpiresAt)
}

func TestLookupIsRepeatable(t *testing.T) {
	store, _ := newTestStore(t)

	issued, err := store.Issue(context.Background(), uuid.New(), "client@example.com", 7)
	require.NoError(t, err)

	// No single-use semantics: every call re-validates independently.
	for i := 0; i < 5; i++ {
		found, err := store.Lookup(context.Background(), issued.Value)
		require.NoError(t, err)
		assert.Equal(t, issued.ProjectID, found.ProjectID)
		assert.Equal(t, issued.ClientEmail, found.ClientEmail)

		require.NoError(t, store.Touch(context.Background(), issued.ID))
	}
}

func TestTouchAdvancesLastUsed(t *testing.T) {
	store, clock := newTestStore(t)

	issued, err := store.Issue(context.Background(), uuid.New(), "client@example.com", 7)
	require.NoError(t, err)
	assert.Nil(t, issued.LastUsedAt)

	require.NoError(t, store.Touch(context.Background(), issued.ID))
	first, err := store.Lookup(context.Background(), issued.Value)
	require.NoError(t, err)
	require.NotNil(t, first.LastUsedAt)

	clock.Advance(time.Hour)
	require.NoError(t, store.Touch(context.Background(), issued.ID))
	second, err := store.Lookup(context.Background(), issued.Value)
	require.NoError(t, err)
	require.NotNil(t, second.LastUsedAt)
	assert.True(t, second.LastUsedAt.After(*first.LastUsedAt))
}

func TestExpiryWindow(t *testing.T) {
	store, clock := newTestStore(t)

	issued, err := store.Issue(context.Background(), uuid.New(), "client@example.com", 7)
	require.NoError(t, err)

	clock.Advance(6 * 24 * time.Hour)
	_, err = store.Lookup(context.Background(), issued.Value)
	assert.NoError(t, err, "token must still validate one day before expiry")

	clock.Advance(2 * 24 * time.Hour)
	_, err = store.Lookup(context.Background(), issued.Value)
	assert.ErrorIs(t, err, ErrTokenExpired, "token must fail after expiry even while still active")
}

func TestExpiryBoundaryIsExclusive(t *testing.T) {
	store, clock := newTestStore(t)

	issued, err := store.Issue(context.Background(), uuid.New(), "client@example.com", 1)
	require.NoError(t, err)

	// Exactly at expires_at the token is already dead.
	clock.Advance(24 * time.Hour)
	_, err = store.Lookup(context.Background(), issued.Value)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRevokeBeatsExpiry(t *testing.T) {
	store, _ := newTestStore(t)

	issued, err := store.Issue(context.Background(), uuid.New(), "client@example.com", 90)
	require.NoError(t, err)

	require.NoError(t, store.Revoke(context.Background(), issued.ID))

	// Revocation hides the row from lookup entirely, well before expiry.
	_, err = store.Lookup(context.Background(), issued.Value)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	// The row is retained, not deleted.
	tokens, err := store.ListByProject(context.Background(), issued.ProjectID)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.False(t, tokens[0].IsActive)
}

func TestDuplicateIssueYieldsIndependentTokens(t *testing.T) {
	store, _ := newTestStore(t)
	projectID := uuid.New()

	first, err := store.Issue(context.Background(), projectID, "client@example.com", 30)
	require.NoError(t, err)
	second, err := store.Issue(context.Background(), projectID, "client@example.com", 30)
	require.NoError(t, err)

	require.NotEqual(t, first.Value, second.Value)

	require.NoError(t, store.Revoke(context.Background(), first.ID))

	_, err = store.Lookup(context.Background(), first.Value)
	assert.ErrorIs(t, err, ErrTokenNotFound)

	_, err = store.Lookup(context.Background(), second.Value)
	assert.NoError(t, err, "revoking one copy must not affect the other")
}

func TestMutatedTokenValueFailsLookup(t *testing.T) {
	store, _ := newTestStore(t)

	issued, err := store.Issue(context.Background(), uuid.New(), "client@example.com", 30)
	require.NoError(t, err)

	mutations := []string{
		issued.Value[:len(issued.Value)-1],
		issued.Value + "x",
		strings.ToUpper(issued.Value[:1]) + issued.Value[1:],
		"",
	}
	for _, mutated := range mutations {
		if mutated == issued.Value {
			continue
		}
		_, err := store.Lookup(context.Background(), mutated)
		assert.ErrorIs(t, err, ErrTokenNotFound, "mutation %q", mutated)
	}
}

func TestRevokeUnknownToken(t *testing.T) {
	store, _ := newTestStore(t)
	err := store.Revoke(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrTokenNotFound)
}
