package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsed/pkg/render"
)

func TestRoutesSmoke(t *testing.T) {
	a, _, _ := newTestAPI(t)

	handler, err := a.Routes()
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	defer srv.Close()

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}

	// PM routes reject unauthenticated callers before touching storage.
	resp, err := http.Get(srv.URL + "/v1/projects")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestNewValidatesDependencies(t *testing.T) {
	renderer, err := render.New()
	require.NoError(t, err)

	cfg := Config{PortalBaseURL: "http://localhost", JWTSigningKey: []byte("k")}

	_, err = New(nil, renderer, cfg)
	assert.Error(t, err)

	_, err = New(&Store{}, renderer, cfg)
	assert.Error(t, err, "missing ORM must be rejected")
}
