package chatbot

import "strings"

// Match describes the entry selected for a message.
type Match struct {
	Index int // position in the FAQ list
	Entry FaqEntry
	Score int // distinct keywords found in the message
}

// Matcher picks the FAQ entry whose keywords best cover a message.
type Matcher struct {
	fallback string
}

func NewMatcher(fallback string) *Matcher {
	return &Matcher{fallback: fallback}
}

// Fallback is the reply used when nothing matches.
func (m *Matcher) Fallback() string {
	return m.fallback
}

// Match returns the entry with the most keywords occurring in message as
// substrings, case-insensitively. Ties go to the earliest entry and entries
// scoring zero are never selected.
func (m *Matcher) Match(message string, faqs []FaqEntry) (Match, bool) {
	normalized := strings.ToLower(message)

	best := Match{Index: -1}
	for i, entry := range faqs {
		score := Score(normalized, entry.Keywords)
		if score > best.Score {
			best = Match{Index: i, Entry: entry, Score: score}
		}
	}
	if best.Index < 0 {
		return Match{Index: -1}, false
	}
	return best, true
}

// Reply returns the matched answer or the fallback. It never fails.
func (m *Matcher) Reply(message string, faqs []FaqEntry) string {
	if match, ok := m.Match(message, faqs); ok {
		return match.Entry.Answer
	}
	return m.fallback
}

// Score counts the distinct non-empty keywords contained in an already
// lowercased message.
func Score(normalized string, keywords []string) int {
	if normalized == "" || len(keywords) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(keywords))
	score := 0
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if strings.Contains(normalized, k) {
			score++
		}
	}
	return score
}
