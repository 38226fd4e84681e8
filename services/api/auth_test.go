package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsed/pkg/render"
	"pulsed/services/mailer"
)

func newTestAPI(t *testing.T) (*API, *memTokenStore, *fakeClock) {
	t.Helper()

	renderer, err := render.New()
	require.NoError(t, err)

	store, clock := newTestStore(t)
	a := &API{
		store:    &Store{Mail: mailer.New(mailer.Config{})},
		renderer: renderer,
		config: Config{
			PortalBaseURL: "https://pulse.example.com",
			JWTSigningKey: []byte("test-signing-key"),
			SessionTTL:    time.Hour,
			TokenTTLDays:  30,
		},
		tokens: store,
	}
	return a, store, clock
}

func TestSessionTokenRoundTrip(t *testing.T) {
	a, _, _ := newTestAPI(t)
	user := User{ID: uuid.New(), Email: "pm@example.com", Name: "Dana"}

	signed, expiresAt, err := a.generateSessionToken(user, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	parsed, err := a.parseSessionToken(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, parsed)
}

func TestSessionTokenWrongKey(t *testing.T) {
	a, _, _ := newTestAPI(t)
	signed, _, err := a.generateSessionToken(User{ID: uuid.New()}, time.Now().UTC())
	require.NoError(t, err)

	other, _, _ := newTestAPI(t)
	other.config.JWTSigningKey = []byte("a-different-key")

	_, err = other.parseSessionToken(signed)
	assert.Error(t, err)
}

func TestSessionTokenExpired(t *testing.T) {
	a, _, _ := newTestAPI(t)
	signed, _, err := a.generateSessionToken(User{ID: uuid.New()}, time.Now().UTC().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = a.parseSessionToken(signed)
	assert.Error(t, err)
}

func TestRequirePM(t *testing.T) {
	a, _, _ := newTestAPI(t)
	pmID := uuid.New()

	var seen uuid.UUID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pmFromContext(r.Context())
		require.True(t, ok)
		seen = id
		w.WriteHeader(http.StatusNoContent)
	})
	handler := a.requirePM(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/projects", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/projects", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/projects", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		signed, _, err := a.generateSessionToken(User{ID: pmID}, time.Now().UTC())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/projects", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, pmID, seen)
	})
}
