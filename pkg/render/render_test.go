package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderClientInvite(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	out, err := engine.Render("client_invite", map[string]any{
		"ClientName":  "Avery",
		"PMName":      "Dana",
		"ProjectName": "Website Relaunch",
		"ClientURL":   "https://pulse.example.com/client?token=abc",
		"ExpiresAt":   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Hello Avery")
	assert.Contains(t, out, "Dana has shared")
	assert.Contains(t, out, "https://pulse.example.com/client?token=abc")
	assert.Contains(t, out, "April 1, 2026")
}

func TestRenderPulsePublished(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	out, err := engine.Render("pulse_published", map[string]any{
		"ClientName":  "",
		"ProjectName": "Website Relaunch",
		"WeekOf":      time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		"Health":      "amber",
		"Summary":     "Launch slipped a week.",
		"Details":     "Waiting on final copy.",
		"ClientURL":   "https://pulse.example.com/client?token=abc",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Health: AMBER")
	assert.Contains(t, out, "Launch slipped a week.")
	assert.Contains(t, out, "Waiting on final copy.")
	assert.Contains(t, out, "March 2, 2026")
}

func TestRenderUnknownTemplate(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	_, err = engine.Render("no_such_template", nil)
	assert.Error(t, err)
}
