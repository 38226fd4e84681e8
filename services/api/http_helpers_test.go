package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"monday stays", "2026-03-02", "2026-03-02"},
		{"wednesday rolls back", "2026-03-04", "2026-03-02"},
		{"sunday rolls back", "2026-03-08", "2026-03-02"},
		{"next monday", "2026-03-09", "2026-03-09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := parseDate(tt.input)
			require.NoError(t, err)

			got := weekStart(in)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.Equal(t, time.Monday, got.Weekday())
		})
	}
}

func TestParseDateRejectsTimestamps(t *testing.T) {
	_, err := parseDate("2026-03-02T10:00:00Z")
	assert.Error(t, err)

	_, err = parseDate("03/02/2026")
	assert.Error(t, err)
}

func TestDecodeJSONUnknownField(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"token":"abc","bogus":1}`))

	var dest struct {
		Token string `json:"token"`
	}
	assert.Error(t, decodeJSON(req, &dest))
}

func TestTokenExpiredAtBoundary(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	token := AccessToken{ExpiresAt: now}

	assert.True(t, token.ExpiredAt(now), "expiry instant itself is already expired")
	assert.True(t, token.ExpiredAt(now.Add(time.Second)))
	assert.False(t, token.ExpiredAt(now.Add(-time.Second)))
}

func TestTokenRedacted(t *testing.T) {
	assert.Equal(t, "abcdefgh...", AccessToken{Value: "abcdefghijkl"}.Redacted())
	assert.Equal(t, "short", AccessToken{Value: "short"}.Redacted())
}
