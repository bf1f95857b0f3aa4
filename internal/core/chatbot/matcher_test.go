package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallback = "Sorry, I don't have an answer for that. Please contact us directly."

func shippingAndPricing() FAQList {
	return FAQList{
		{Question: "Shipping", Answer: "We ship worldwide", Keywords: []string{"ship", "delivery"}},
		{Question: "Pricing", Answer: "Contact sales", Keywords: []string{"price", "cost"}},
	}
}

func TestMatcher_Reply(t *testing.T) {
	m := NewMatcher(fallback)

	tests := []struct {
		name    string
		message string
		faqs    FAQList
		want    string
	}{
		{"keyword in message", "what is your delivery time", shippingAndPricing(), "We ship worldwide"},
		{"no keyword", "hello", shippingAndPricing(), fallback},
		{"case insensitive message", "What is the PRICE?", shippingAndPricing(), "Contact sales"},
		{"substring of a longer word", "do you offer shipping", shippingAndPricing(), "We ship worldwide"},
		{"empty message", "", shippingAndPricing(), fallback},
		{"empty collection", "delivery", nil, fallback},
		{
			name:    "highest count wins over earlier entry",
			message: "price and cost of delivery",
			faqs:    shippingAndPricing(),
			want:    "Contact sales",
		},
		{
			name:    "entry without keywords never matches",
			message: "anything at all",
			faqs:    FAQList{{Question: "Empty", Answer: "never", Keywords: []string{}}},
			want:    fallback,
		},
		{
			name:    "uppercase keyword still matches",
			message: "cotton rolls",
			faqs:    FAQList{{Answer: "Yes, cotton", Keywords: []string{"Cotton"}}},
			want:    "Yes, cotton",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Reply(tt.message, tt.faqs))
		})
	}
}

func TestMatcher_TieGoesToEarliestEntry(t *testing.T) {
	m := NewMatcher(fallback)
	faqs := FAQList{
		{Question: "A", Answer: "answer A", Keywords: []string{"cotton"}},
		{Question: "B", Answer: "answer B", Keywords: []string{"cotton"}},
	}

	match, ok := m.Match("do you sell cotton?", faqs)
	require.True(t, ok)
	assert.Equal(t, 0, match.Index)
	assert.Equal(t, "answer A", match.Entry.Answer)
	assert.Equal(t, 1, match.Score)
}

func TestMatcher_DuplicateKeywordsCountOnce(t *testing.T) {
	m := NewMatcher(fallback)
	faqs := FAQList{
		{Answer: "dup", Keywords: []string{"ship", "ship", "ship"}},
		{Answer: "two", Keywords: []string{"ship", "export"}},
	}

	match, ok := m.Match("we ship and export", faqs)
	require.True(t, ok)
	assert.Equal(t, "two", match.Entry.Answer)
	assert.Equal(t, 2, match.Score)
}

func TestMatcher_EmptyKeywordIgnored(t *testing.T) {
	m := NewMatcher(fallback)
	faqs := FAQList{{Answer: "blank", Keywords: []string{"", "  "}}}

	_, ok := m.Match("hello", faqs)
	assert.False(t, ok)
}

func TestMatcher_NoMatchReturnsNegativeIndex(t *testing.T) {
	m := NewMatcher(fallback)

	match, ok := m.Match("hello", shippingAndPricing())
	assert.False(t, ok)
	assert.Equal(t, -1, match.Index)
	assert.Equal(t, fallback, m.Fallback())
}

func TestScore(t *testing.T) {
	assert.Equal(t, 0, Score("", []string{"a"}))
	assert.Equal(t, 0, Score("abc", nil))
	assert.Equal(t, 2, Score("cotton linen towels", []string{"cotton", "linen", "silk"}))
}
