package client

import (
	"context"
	"sync"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/chatbot"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

// FAQEditor is the admin panel's working copy of the chatbot settings.
// Edits stay local until Save sends greeting and FAQs in one call.
type FAQEditor struct {
	client  *Client
	session *Session

	mu       sync.Mutex
	greeting string
	faqs     chatbot.FAQList
}

func NewFAQEditor(client *Client, session *Session) *FAQEditor {
	return &FAQEditor{
		client:   client,
		session:  session,
		greeting: chatbot.DefaultGreeting,
		faqs:     chatbot.FAQList{},
	}
}

// Load replaces the working copy with the saved settings. On failure the
// editor falls back to the default greeting and an empty list, and the
// error is returned for display.
func (e *FAQEditor) Load(ctx context.Context) error {
	settings, err := e.client.GetSettings(ctx)
	if err != nil {
		utils.LogWarn("Failed to load chatbot settings, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		settings = DefaultSettings()
	}

	e.mu.Lock()
	e.greeting = settings.Greeting
	e.faqs = settings.FAQs
	e.mu.Unlock()
	return err
}

func (e *FAQEditor) Greeting() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.greeting
}

func (e *FAQEditor) SetGreeting(greeting string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.greeting = greeting
}

// FAQs returns a copy of the working list
func (e *FAQEditor) FAQs() chatbot.FAQList {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.faqs.Normalized()
}

// Add appends an empty entry and returns its position
func (e *FAQEditor) Add() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.faqs.Add()
}

// Remove deletes the entry at i; out of range positions are ignored
func (e *FAQEditor) Remove(i int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.faqs.Remove(i)
}

func (e *FAQEditor) SetQuestion(i int, question string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.faqs.SetQuestion(i, question)
}

func (e *FAQEditor) SetAnswer(i int, answer string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.faqs.SetAnswer(i, answer)
}

// EditKeywords parses the comma separated field of entry i
func (e *FAQEditor) EditKeywords(i int, raw string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.faqs.SetKeywords(i, raw)
}

// KeywordsText renders entry i's keywords for the text field
func (e *FAQEditor) KeywordsText(i int) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i < 0 || i >= len(e.faqs) {
		return ""
	}
	return chatbot.JoinKeywords(e.faqs[i].Keywords)
}

// Save submits the working copy. Failures are returned, never retried.
func (e *FAQEditor) Save(ctx context.Context) error {
	token := e.session.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	e.mu.Lock()
	greeting, faqs := e.greeting, e.faqs.Normalized()
	e.mu.Unlock()

	return e.client.SaveSettings(ctx, token, greeting, faqs)
}
