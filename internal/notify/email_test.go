package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{FromEmail: "test@example.com"}, nil)
	assert.Nil(t, sender)
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{APIKey: "test-key", FromEmail: "test@example.com"}, nil)
	require.NotNil(t, sender)
	assert.Equal(t, "Reservas", sender.fromName)
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{}

	err := sender.Send(context.Background(), EmailMessage{To: "a@example.com", Subject: "x"})
	assert.Error(t, err)
}

func TestNewEmailSender_FallsBackToStub(t *testing.T) {
	sender := NewEmailSender(SendGridConfig{}, nil)

	_, ok := sender.(*StubEmailSender)
	assert.True(t, ok)
	assert.NoError(t, sender.Send(context.Background(), EmailMessage{To: "a@example.com"}))
}

func TestConfirmationEmail(t *testing.T) {
	c := Confirmation{
		Reference: "ref-1",
		Name:      "Ana",
		Email:     "ana@example.com",
		Date:      time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
		Time:      "09:45",
		Notes:     "primera visita",
	}

	es := ConfirmationEmail(c)
	assert.Equal(t, "ana@example.com", es.To)
	assert.Equal(t, "Tu cita está confirmada", es.Subject)
	assert.Contains(t, es.Body, "lunes 19/10/2026 a las 09:45")
	assert.Contains(t, es.Body, "primera visita")
	assert.Contains(t, es.Body, "ref-1")

	c.Lang = "en"
	en := ConfirmationEmail(c)
	assert.Equal(t, "Your appointment is confirmed", en.Subject)
	assert.Contains(t, en.Body, "Monday, October 19, 2026 at 09:45")
}
