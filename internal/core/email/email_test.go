package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/config"
)

func TestBrevoProvider_SendEmail(t *testing.T) {
	var got brevoEmailRequest
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p := NewBrevoProvider("key-1", "noreply@example.com", "Sinfini")
	p.endpoint = srv.URL

	require.NoError(t, p.SendEmail(context.Background(), "info@example.com", "Hi", "<p>x</p>"))
	assert.Equal(t, "key-1", apiKey)
	assert.Equal(t, "noreply@example.com", got.Sender.Email)
	assert.Equal(t, []brevoContact{{Email: "info@example.com"}}, got.To)
	assert.Equal(t, "<p>x</p>", got.HTMLContent)
}

func TestBrevoProvider_SendEmailErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewBrevoProvider("bad", "noreply@example.com", "")
	p.endpoint = srv.URL

	err := p.SendEmail(context.Background(), "info@example.com", "Hi", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

type recordingProvider struct {
	to, subject, body string
}

func (p *recordingProvider) SendEmail(_ context.Context, to, subject, body string) error {
	p.to, p.subject, p.body = to, subject, body
	return nil
}

func (p *recordingProvider) GetProviderName() string { return "recording" }

func TestService_NotifyContactEscapesInput(t *testing.T) {
	rec := &recordingProvider{}
	svc := NewService(rec, "admin@example.com", "Sinfini Marketing FZC")

	err := svc.NotifyContact(context.Background(), ContactNotification{
		Reference: "ref-1",
		Name:      "Jane <script>",
		Email:     "jane@example.com",
		Subject:   "Bulk order",
		Message:   "line one\nline two",
	})
	require.NoError(t, err)

	assert.Equal(t, "admin@example.com", rec.to)
	assert.Equal(t, "New contact message: Bulk order", rec.subject)
	assert.Contains(t, rec.body, "Jane &lt;script&gt;")
	assert.Contains(t, rec.body, "line one<br>line two")
	assert.NotContains(t, rec.body, "Phone")
}

func TestService_NilIsSafe(t *testing.T) {
	var svc *Service
	assert.Error(t, svc.NotifyContact(context.Background(), ContactNotification{}))
	assert.Equal(t, "none", svc.GetProviderName())
}

func TestNewServiceFromConfig(t *testing.T) {
	svc, err := NewServiceFromConfig(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, svc)

	svc, err = NewServiceFromConfig(&config.Config{EmailProvider: "brevo", BrevoAPIKey: "k", AdminEmail: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "brevo", svc.GetProviderName())

	svc, err = NewServiceFromConfig(&config.Config{EmailProvider: "resend", ResendAPIKey: "re_x", AdminEmail: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "resend", svc.GetProviderName())

	_, err = NewServiceFromConfig(&config.Config{EmailProvider: "resend", AdminEmail: "a@example.com"})
	assert.Error(t, err)

	_, err = NewServiceFromConfig(&config.Config{EmailProvider: "smtp", AdminEmail: "a@example.com"})
	assert.Error(t, err)
}
