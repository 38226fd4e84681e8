package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveClientTokenFailures(t *testing.T) {
	a, store, clock := newTestAPI(t)

	revoked, err := store.Issue(context.Background(), uuid.New(), "client@example.com", 7)
	require.NoError(t, err)
	require.NoError(t, store.Revoke(context.Background(), revoked.ID))

	expired, err := store.Issue(context.Background(), uuid.New(), "client@example.com", 1)
	require.NoError(t, err)
	clock.Advance(48 * time.Hour)

	fresh, err := store.Issue(context.Background(), uuid.New(), "client@example.com", 7)
	require.NoError(t, err)

	cases := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"unknown", "no-such-token"},
		{"expired", expired.Value},
		{"revoked", revoked.Value},
		{"truncated", fresh.Value[:10]},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/v1/client/overview", nil)

			_, ok := a.resolveClientToken(rec, req, tc.value)
			require.False(t, ok)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			// Invalid and expired must be indistinguishable to the caller.
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, clientTokenMessage, body["error"])
		})
	}
}

func TestResolveClientTokenSuccessTouches(t *testing.T) {
	a, store, _ := newTestAPI(t)
	projectID := uuid.New()

	issued, err := store.Issue(context.Background(), projectID, "client@example.com", 7)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/client/overview", nil)

	token, ok := a.resolveClientToken(rec, req, issued.Value)
	require.True(t, ok)
	assert.Equal(t, projectID, token.ProjectID)
	assert.Equal(t, "client@example.com", token.ClientEmail)

	stored, err := store.Lookup(context.Background(), issued.Value)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastUsedAt, "successful validation must record last use")
}

func TestClientValidateRejectsBadBody(t *testing.T) {
	a, _, _ := newTestAPI(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/client/validate", strings.NewReader("{not json"))
	a.handleClientValidate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClientPortalURL(t *testing.T) {
	a, _, _ := newTestAPI(t)
	token := AccessToken{Value: "abc123"}

	assert.Equal(t, "https://pulse.example.com/client?token=abc123", a.clientPortalURL(token))
}
