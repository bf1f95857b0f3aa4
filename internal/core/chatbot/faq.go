// Package chatbot holds the FAQ collection that backs the support chatbot and
// the keyword matcher that answers visitor messages from it.
package chatbot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FaqEntry is one question/answer pair with the keywords that select it.
// Keywords have set semantics; an entry without keywords never matches.
type FaqEntry struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Keywords []string `json:"keywords"`
}

// FAQList is the ordered FAQ collection. Position is the only identity an
// entry has: the whole list is replaced on every save.
type FAQList []FaqEntry

// ParseKeywords turns the comma separated text typed in the admin panel into a
// keyword list. Segments are trimmed and empty segments are dropped, so
// "a, b ,, c" yields [a b c].
func ParseKeywords(raw string) []string {
	keywords := []string{}
	for _, part := range strings.Split(raw, ",") {
		if k := strings.TrimSpace(part); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// JoinKeywords is the inverse used to fill the admin text field.
func JoinKeywords(keywords []string) string {
	return strings.Join(keywords, ", ")
}

// Add appends an empty entry and returns its position.
func (l *FAQList) Add() int {
	*l = append(*l, FaqEntry{Keywords: []string{}})
	return len(*l) - 1
}

// Remove deletes the entry at i. Remaining entries keep their relative order.
// Out of range positions are ignored.
func (l *FAQList) Remove(i int) bool {
	if i < 0 || i >= len(*l) {
		return false
	}
	cur := *l
	out := make(FAQList, 0, len(cur)-1)
	out = append(out, cur[:i]...)
	out = append(out, cur[i+1:]...)
	*l = out
	return true
}

// SetKeywords replaces the keywords of entry i with the parsed form of raw.
func (l FAQList) SetKeywords(i int, raw string) bool {
	if i < 0 || i >= len(l) {
		return false
	}
	l[i].Keywords = ParseKeywords(raw)
	return true
}

func (l FAQList) SetQuestion(i int, question string) bool {
	if i < 0 || i >= len(l) {
		return false
	}
	l[i].Question = question
	return true
}

func (l FAQList) SetAnswer(i int, answer string) bool {
	if i < 0 || i >= len(l) {
		return false
	}
	l[i].Answer = answer
	return true
}

// Normalized returns a copy where nil keyword slices are empty, so the list
// always encodes keywords as [] instead of null.
func (l FAQList) Normalized() FAQList {
	out := make(FAQList, len(l))
	for i, e := range l {
		if e.Keywords == nil {
			e.Keywords = []string{}
		} else {
			e.Keywords = append([]string(nil), e.Keywords...)
		}
		out[i] = e
	}
	return out
}

// EncodeText renders the list as a JSON string, the form older clients expect
// in the settings payload.
func (l FAQList) EncodeText() (string, error) {
	b, err := json.Marshal(l.Normalized())
	if err != nil {
		return "", fmt.Errorf("failed to encode faqs: %w", err)
	}
	return string(b), nil
}

// UnmarshalJSON accepts both a JSON array and a string holding an encoded
// array. null and "" decode to an empty list.
func (l *FAQList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return fmt.Errorf("invalid faqs: %w", err)
		}
		data = bytes.TrimSpace([]byte(encoded))
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = FAQList{}
		return nil
	}

	var entries []FaqEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("invalid faqs: %w", err)
	}
	*l = FAQList(entries)
	return nil
}

// DefaultGreeting is shown by the chat widget when no greeting is stored.
const DefaultGreeting = "Hello! How can I help you today?"

// DefaultFAQs seeds a fresh installation.
func DefaultFAQs() FAQList {
	return FAQList{
		{
			Question: "What products do you offer?",
			Answer:   "We specialize in premium cotton and synthetic ladies' fabrics, garments, linens, and terry toweling products.",
			Keywords: []string{"products", "offer", "sell", "fabrics", "textile"},
		},
		{
			Question: "Where do you export to?",
			Answer:   "We export to international markets across Asia, Africa, and Europe.",
			Keywords: []string{"export", "ship", "countries", "where", "location"},
		},
		{
			Question: "How can I contact you?",
			Answer:   "You can reach us through our contact form or email us at info@sinfinimarketing.com. We are located in Sharjah, UAE.",
			Keywords: []string{"contact", "email", "phone", "reach", "address"},
		},
		{
			Question: "What is your company's specialty?",
			Answer:   "Sinfini Marketing FZC specializes in exporting premium quality textiles including cotton and synthetic fabrics, garments, linens, and terry toweling products.",
			Keywords: []string{"specialty", "specialize", "focus", "expertise"},
		},
	}
}
