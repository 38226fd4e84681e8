package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

func TestDisabledSender(t *testing.T) {
	s := New(Config{})
	assert.False(t, s.Enabled())
	assert.ErrorIs(t, s.Send("client@example.com", "subject", "body"), ErrDisabled)
}

func TestSendCapturesMessage(t *testing.T) {
	s := New(Config{Host: "smtp.example.com", Port: 587, From: "updates@pulse.example.com"})
	require.True(t, s.Enabled())

	var captured *gomail.Message
	s.dial = func(m *gomail.Message) error {
		captured = m
		return nil
	}

	require.NoError(t, s.Send("client@example.com", "Weekly update", "hello"))
	require.NotNil(t, captured)
	assert.Equal(t, []string{"updates@pulse.example.com"}, captured.GetHeader("From"))
	assert.Equal(t, []string{"client@example.com"}, captured.GetHeader("To"))
	assert.Equal(t, []string{"Weekly update"}, captured.GetHeader("Subject"))
}

func TestSendRequiresRecipient(t *testing.T) {
	s := New(Config{Host: "smtp.example.com", Port: 587, From: "updates@pulse.example.com"})
	s.dial = func(*gomail.Message) error { return nil }

	assert.Error(t, s.Send("", "subject", "body"))
}
