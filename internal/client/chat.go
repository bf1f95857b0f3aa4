package client

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

// ConnectionErrorReply is shown in place of a reply the API did not deliver
const ConnectionErrorReply = "Sorry, I encountered an error. Please try again."

// Origin tells who wrote a chat message
type Origin string

const (
	OriginUser Origin = "user"
	OriginBot  Origin = "bot"
)

// ChatMessage is one bubble of the transcript. It is never persisted.
type ChatMessage struct {
	Origin    Origin
	Text      string
	Timestamp time.Time
}

// Chat is the visitor chat widget. The user message is appended before the
// request is sent and replies are appended as they arrive; concurrent sends
// are neither queued nor deduplicated.
type Chat struct {
	client *Client
	now    func() time.Time

	mu         sync.Mutex
	transcript []ChatMessage
}

func NewChat(client *Client) *Chat {
	return &Chat{client: client, now: time.Now}
}

// Open loads the greeting and posts it as the first bot message. The
// default greeting is used when settings cannot be loaded.
func (c *Chat) Open(ctx context.Context) {
	greeting := DefaultSettings().Greeting
	if settings, err := c.client.GetSettings(ctx); err == nil {
		greeting = settings.Greeting
	} else {
		utils.LogWarn("Chat settings unavailable", map[string]interface{}{"error": err.Error()})
	}
	c.append(OriginBot, greeting)
}

// Send posts a visitor message and returns the bot's reply. Blank messages
// are ignored. Transport failures become ConnectionErrorReply.
func (c *Chat) Send(ctx context.Context, text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	c.append(OriginUser, text)

	reply, err := c.client.SendMessage(ctx, text)
	if err != nil {
		utils.LogWarn("Chat message failed", map[string]interface{}{"error": err.Error()})
		reply = ConnectionErrorReply
	}
	c.append(OriginBot, reply)
	return reply
}

// Transcript returns a copy of the messages so far
func (c *Chat) Transcript() []ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ChatMessage(nil), c.transcript...)
}

func (c *Chat) append(origin Origin, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.transcript = append(c.transcript, ChatMessage{Origin: origin, Text: text, Timestamp: c.now()})
}
