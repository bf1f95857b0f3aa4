package client

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/chatbot"
	"github.com/sinfini-marketing/sinfini-web-be/internal/server"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/config"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/database"
)

const fallback = "Sorry, I don't have an answer for that. Please contact us directly."

func newTestAPI(t *testing.T, faqEncoding string) *Client {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_")))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(server.Models()...))

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		JWTExpiresHours:    1,
		CORSOrigins:        "*",
		RateLimitPerMinute: 1000,
		ChatbotFallback:    fallback,
		ChatbotFAQEncoding: faqEncoding,
		MaintenanceCron:    "0 0 3 * * *",
	}
	srv, err := server.New(cfg, db)
	require.NoError(t, err)
	_, err = srv.AuthService().EnsureAdmin(context.Background(), "admin", "s3cret")
	require.NoError(t, err)

	ts := httptest.NewServer(adaptor.FiberApp(srv.App))
	t.Cleanup(ts.Close)
	return New(ts.URL)
}

func loggedIn(t *testing.T, c *Client) *Session {
	t.Helper()
	session := NewSession(c, nil)
	require.NoError(t, session.Login(context.Background(), "admin", "s3cret"))
	return session
}

func TestSession_LoginInitLogout(t *testing.T) {
	c := newTestAPI(t, "text")
	ctx := context.Background()
	store := FileStore{Path: filepath.Join(t.TempDir(), "token")}

	session := NewSession(c, store)
	err := session.Login(ctx, "admin", "wrong")
	assert.True(t, IsUnauthorized(err))
	assert.False(t, session.Authenticated())

	require.NoError(t, session.Login(ctx, "admin", "s3cret"))
	assert.Equal(t, "admin", session.Username())

	// a new process restores the stored token
	restored := NewSession(c, store)
	require.NoError(t, restored.Init(ctx))
	assert.True(t, restored.Authenticated())
	assert.Equal(t, "admin", restored.Username())

	require.NoError(t, restored.Logout(ctx))
	assert.False(t, restored.Authenticated())
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSession_InitClearsRejectedToken(t *testing.T) {
	c := newTestAPI(t, "text")
	store := &MemoryStore{}
	require.NoError(t, store.Save("garbage"))

	session := NewSession(c, store)
	require.NoError(t, session.Init(context.Background()))
	assert.False(t, session.Authenticated())

	token, _ := store.Load()
	assert.Empty(t, token)
}

func TestFAQEditor_EditAndSave(t *testing.T) {
	for _, encoding := range []string{"text", "structured"} {
		t.Run(encoding, func(t *testing.T) {
			c := newTestAPI(t, encoding)
			ctx := context.Background()
			editor := NewFAQEditor(c, loggedIn(t, c))

			require.NoError(t, editor.Load(ctx))
			assert.Equal(t, chatbot.DefaultGreeting, editor.Greeting())
			assert.Empty(t, editor.FAQs())

			i := editor.Add()
			assert.True(t, editor.SetQuestion(i, "Shipping"))
			assert.True(t, editor.SetAnswer(i, "We ship worldwide"))
			assert.True(t, editor.EditKeywords(i, "ship, delivery ,, "))
			assert.Equal(t, "ship, delivery", editor.KeywordsText(i))

			j := editor.Add()
			editor.SetQuestion(j, "Pricing")
			editor.SetAnswer(j, "Contact sales")
			editor.EditKeywords(j, "price,cost")
			editor.SetGreeting("Welcome!")
			require.NoError(t, editor.Save(ctx))

			reloaded := NewFAQEditor(c, nil)
			require.NoError(t, reloaded.Load(ctx))
			assert.Equal(t, "Welcome!", reloaded.Greeting())
			assert.Equal(t, editor.FAQs(), reloaded.FAQs())

			assert.True(t, reloaded.Remove(0))
			assert.False(t, reloaded.Remove(7))
			require.Len(t, reloaded.FAQs(), 1)
			assert.Equal(t, "Pricing", reloaded.FAQs()[0].Question)
		})
	}
}

func TestFAQEditor_SaveTwiceIsIdempotent(t *testing.T) {
	c := newTestAPI(t, "text")
	ctx := context.Background()
	editor := NewFAQEditor(c, loggedIn(t, c))
	i := editor.Add()
	editor.SetAnswer(i, "We ship worldwide")
	editor.EditKeywords(i, "ship")

	require.NoError(t, editor.Save(ctx))
	first, err := c.GetSettings(ctx)
	require.NoError(t, err)

	require.NoError(t, editor.Save(ctx))
	second, err := c.GetSettings(ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Greeting, second.Greeting)
	assert.Equal(t, first.FAQs, second.FAQs)
}

func TestFAQEditor_SaveRequiresSession(t *testing.T) {
	c := newTestAPI(t, "text")
	editor := NewFAQEditor(c, NewSession(c, nil))

	assert.ErrorIs(t, editor.Save(context.Background()), ErrNotAuthenticated)
}

func TestFAQEditor_LoadFailureUsesDefaults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Failed to fetch chatbot settings"}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	editor := NewFAQEditor(New(ts.URL), nil)
	editor.Add()

	err := editor.Load(context.Background())
	assert.Error(t, err)
	assert.Equal(t, chatbot.DefaultGreeting, editor.Greeting())
	assert.Empty(t, editor.FAQs())
}

func TestChat_Conversation(t *testing.T) {
	c := newTestAPI(t, "text")
	ctx := context.Background()

	editor := NewFAQEditor(c, loggedIn(t, c))
	i := editor.Add()
	editor.SetAnswer(i, "We ship worldwide")
	editor.EditKeywords(i, "ship, delivery")
	editor.SetGreeting("Hi there!")
	require.NoError(t, editor.Save(ctx))

	chat := NewChat(c)
	chat.Open(ctx)
	assert.Equal(t, "We ship worldwide", chat.Send(ctx, "What is your delivery time?"))
	assert.Equal(t, fallback, chat.Send(ctx, "hello"))
	assert.Equal(t, "", chat.Send(ctx, "   "))

	transcript := chat.Transcript()
	require.Len(t, transcript, 5)
	assert.Equal(t, ChatMessage{Origin: OriginBot, Text: "Hi there!", Timestamp: transcript[0].Timestamp}, transcript[0])
	assert.Equal(t, OriginUser, transcript[1].Origin)
	assert.Equal(t, "What is your delivery time?", transcript[1].Text)
	assert.Equal(t, OriginBot, transcript[2].Origin)
}

func TestChat_TransportFailureShowsPlaceholder(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	ts.Close()

	chat := NewChat(New(ts.URL))
	chat.Open(context.Background())
	assert.Equal(t, ConnectionErrorReply, chat.Send(context.Background(), "hello"))

	transcript := chat.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, chatbot.DefaultGreeting, transcript[0].Text)
	assert.Equal(t, "hello", transcript[1].Text)
	assert.Equal(t, "Sorry, I encountered an error. Please try again.", transcript[2].Text)
}

func TestChat_ConcurrentSends(t *testing.T) {
	c := newTestAPI(t, "text")
	chat := NewChat(c)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chat.Send(context.Background(), fmt.Sprintf("message %d", i))
		}(i)
	}
	wg.Wait()

	transcript := chat.Transcript()
	require.Len(t, transcript, 10)
	users := 0
	for _, m := range transcript {
		if m.Origin == OriginUser {
			users++
		}
	}
	assert.Equal(t, 5, users)
}
